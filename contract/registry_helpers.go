package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lexercore/store"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Chaincode event names emitted by registry writes.
const (
	EventParticipantProfileUpdated        = "ParticipantProfileUpdated"
	EventResourceTypeRegistered           = "ResourceTypeRegistered"
	EventRegistryInitialized              = "RegistryInitialized"
	EventRegistryAdministratorTransferred = "RegistryAdministratorTransferred"
)

// --- Core Helper Methods (used across multiple operations) ---

// getCurrentTxTimestamp retrieves the current transaction timestamp from the stub.
func (s *RegistryContract) getCurrentTxTimestamp(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.AsTime(), nil
}

func (s *RegistryContract) getCurrentActorInfo(ctx contractapi.TransactionContextInterface) (*actorInfo, error) {
	im := NewIdentityManager(ctx)
	fullID, err := im.GetCurrentIdentityFullID()
	if err != nil {
		return nil, fmt.Errorf("failed to get current actor's FullID: %w", err)
	}
	mspID, err := im.GetCurrentMSPID()
	if err != nil {
		return nil, fmt.Errorf("failed to get current actor's MSPID: %w", err)
	}
	return &actorInfo{fullID: fullID, mspID: mspID}, nil
}

// --- Validation Helper Functions ---

func (s *RegistryContract) validateRequiredString(input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, field)
	}
	if len(input) > max {
		return fmt.Errorf("%w: %s exceeds max length %d", ErrInvalidInput, field, max)
	}
	return nil
}

// validateKey checks a caller-supplied record key: required, bounded, and
// encodable as a composite key attribute.
func (s *RegistryContract) validateKey(input, field string, max int) error {
	if err := s.validateRequiredString(input, field, max); err != nil {
		return err
	}
	if err := store.ValidateKey(input); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return nil
}

func (s *RegistryContract) validateOptionalString(input, field string, max int) error {
	if input != "" && len(input) > max {
		return fmt.Errorf("%w: %s exceeds max length %d", ErrInvalidInput, field, max)
	}
	return nil
}

// emitRegistryEvent sends a chaincode event. Failures are logged, not returned:
// the state change stands on its own.
func (s *RegistryContract) emitRegistryEvent(ctx contractapi.TransactionContextInterface, eventName string, actor *actorInfo, payload map[string]interface{}) {
	if actor == nil {
		logger.Errorf("emitRegistryEvent: cannot emit event '%s', actor is nil", eventName)
		return
	}
	event := map[string]interface{}{
		"actorFullId": actor.fullID,
		"actorMspId":  actor.mspID,
	}
	if now, err := s.getCurrentTxTimestamp(ctx); err == nil {
		event["transactionTimestamp"] = now.Format(time.RFC3339)
	}
	for k, v := range payload {
		event[k] = v
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		logger.Warningf("emitRegistryEvent: Failed to marshal event payload for '%s': %v", eventName, err)
		return
	}
	if errSet := ctx.GetStub().SetEvent(eventName, eventBytes); errSet != nil {
		logger.Warningf("emitRegistryEvent: Failed to set event '%s': %v", eventName, errSet)
	}
}
