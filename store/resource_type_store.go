package store

import (
	"fmt"

	"lexercore/model"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// ResourceTypeStore maps a resource-type identifier to its definition.
type ResourceTypeStore interface {
	Get(id string) (*model.ResourceType, error)
	Upsert(id string, def model.ResourceType) (bool, error)
}

type resourceTypeRecord struct {
	ObjectType           string `json:"objectType"` // "ResourceType"
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	ConfidentialityLevel uint   `json:"confidentialityLevel"`
}

// LedgerResourceTypeStore is the world-state implementation of ResourceTypeStore.
type LedgerResourceTypeStore struct {
	stub shim.ChaincodeStubInterface
}

// NewResourceTypeStore returns a ResourceTypeStore bound to the current transaction's stub.
func NewResourceTypeStore(stub shim.ChaincodeStubInterface) *LedgerResourceTypeStore {
	return &LedgerResourceTypeStore{stub: stub}
}

// Get returns the definition registered under id, or nil when none exists.
func (rs *LedgerResourceTypeStore) Get(id string) (*model.ResourceType, error) {
	key, err := createKey(rs.stub, resourceTypeObjectType, id)
	if err != nil {
		return nil, err
	}
	var rec resourceTypeRecord
	found, err := getJSON(rs.stub, key, &rec)
	if err != nil {
		return nil, fmt.Errorf("resource type '%s': %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &model.ResourceType{
		Name:                 rec.Name,
		Description:          rec.Description,
		ConfidentialityLevel: rec.ConfidentialityLevel,
	}, nil
}

// Upsert writes def under id, replacing any previous definition. It reports
// whether the entry was newly created.
func (rs *LedgerResourceTypeStore) Upsert(id string, def model.ResourceType) (bool, error) {
	key, err := createKey(rs.stub, resourceTypeObjectType, id)
	if err != nil {
		return false, err
	}
	var existing resourceTypeRecord
	found, err := getJSON(rs.stub, key, &existing)
	if err != nil {
		return false, fmt.Errorf("resource type '%s': %w", id, err)
	}

	rec := resourceTypeRecord{
		ObjectType:           resourceTypeObjectType,
		ID:                   id,
		Name:                 def.Name,
		Description:          def.Description,
		ConfidentialityLevel: def.ConfidentialityLevel,
	}
	if err := putJSON(rs.stub, key, rec); err != nil {
		return false, fmt.Errorf("resource type '%s': %w", id, err)
	}
	created := !found
	storeLogger.Debugf("Resource type '%s' saved (created: %t)", id, created)
	return created, nil
}
