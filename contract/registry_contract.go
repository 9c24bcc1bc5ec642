package contract

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("lexercore.registrycontract")

// ContractName is the name the registry contract is published under.
const ContractName = "lexer-core"

// Constants for input validation and limits
const (
	maxResourceTypeIDLength = 64
	maxStringInputLength    = 256
	maxDescriptionLength    = 1024
)

// RegistryContract provides participant profiles and resource-type definitions.
// @contract:RegistryContract
type RegistryContract struct {
	contractapi.Contract
}

// NewRegistryContract returns the contract named ContractName.
func NewRegistryContract() *RegistryContract {
	c := &RegistryContract{}
	c.Name = ContractName
	return c
}

// actorInfo holds commonly needed details about the transaction invoker.
type actorInfo struct {
	fullID string
	mspID  string
}

// Instantiate is called during chaincode instantiation.
// It's a lifecycle method of the contract.
func (s *RegistryContract) Instantiate(ctx contractapi.TransactionContextInterface) {
	logger.Info("RegistryContract Instantiated/Upgraded")
}

// GetEvaluateTransactions lists the read-only transactions so clients evaluate
// rather than submit them.
func (s *RegistryContract) GetEvaluateTransactions() []string {
	return []string{
		"GetParticipantProfile",
		"GetResourceTypeDetails",
		"GetRegistryAdministrator",
		"GetLedgerSequence",
		"GetCallerIdentity",
	}
}
