// File: model/identities.go
package model

// AdministratorRecord stores the single identity allowed to register resource types.
type AdministratorRecord struct {
	ObjectType         string `json:"objectType"`         // Set to the composite key object type (RegistryAdministrator)
	FullID             string `json:"fullId"`             // Full X.509 identity string of the administrator
	MSPID              string `json:"mspId"`              // MSP ID of the administrator's organization
	AssignedBy         string `json:"assignedBy"`         // Full ID of the identity that assigned this administrator
	AssignedAt         string `json:"assignedAt"`         // RFC3339 transaction timestamp of the assignment
	AssignedAtSequence uint64 `json:"assignedAtSequence"` // Registry sequence position of the assignment
}

// CallerIdentity describes the invoker of the current transaction.
type CallerIdentity struct {
	FullID          string `json:"fullId"`
	MSPID           string `json:"mspId"`
	IsAdministrator bool   `json:"isAdministrator"`
}
