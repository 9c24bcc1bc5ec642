package contract

import (
	"fmt"
	"strings"

	"lexercore/model"
	"lexercore/store"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Lifecycle: Administration ---

// InitRegistry records the caller as the registry administrator. It succeeds
// only once per channel and only for a caller holding an admin certificate,
// which is how the deploying organization's administrator is recognized.
func (s *RegistryContract) InitRegistry(ctx contractapi.TransactionContextInterface) error {
	logger.Info("Attempting to initialize registry with the caller as administrator...")
	im := NewIdentityManager(ctx)

	existing, err := im.GetAdministrator()
	if err != nil {
		return fmt.Errorf("InitRegistry: failed to check for an existing administrator: %w", err)
	}
	if existing != nil {
		logger.Infof("InitRegistry: caller '%s' rejected, registry already administered by '%s'", MustGetCallerFullID(ctx), existing.FullID)
		return fmt.Errorf("InitRegistry: %w: administrator is '%s'", ErrAlreadyInitialized, existing.FullID)
	}

	actor, err := s.getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("InitRegistry: failed to get caller identity: %w", err)
	}
	hasAdminOU, err := im.HasAdminOU()
	if err != nil {
		return fmt.Errorf("InitRegistry: %w", err)
	}
	if !hasAdminOU {
		return fmt.Errorf("InitRegistry: %w: caller '%s' does not hold an admin certificate", ErrUnauthorized, actor.fullID)
	}

	position, err := store.NewSequence(ctx.GetStub()).Current()
	if err != nil {
		return fmt.Errorf("InitRegistry: %w", err)
	}
	if _, err := im.AssignAdministrator(actor.fullID, actor.mspID, actor.fullID, position); err != nil {
		return fmt.Errorf("InitRegistry: %w", err)
	}

	s.emitRegistryEvent(ctx, EventRegistryInitialized, actor, map[string]interface{}{
		"administratorFullId": actor.fullID,
	})
	logger.Infof("InitRegistry: registry initialized. Identity '%s' is the administrator.", actor.fullID)
	return nil
}

// GetRegistryAdministrator returns the administrator record, or nil before InitRegistry.
func (s *RegistryContract) GetRegistryAdministrator(ctx contractapi.TransactionContextInterface) (*model.AdministratorRecord, error) {
	logger.Debug("Chaincode Call: GetRegistryAdministrator")
	rec, err := NewIdentityManager(ctx).GetAdministrator()
	if err != nil {
		return nil, fmt.Errorf("GetRegistryAdministrator: %w", err)
	}
	return rec, nil
}

// TransferRegistryAdministration hands the administrator role to newAdminID.
// An empty newAdminMSPID defaults to the caller's MSP.
func (s *RegistryContract) TransferRegistryAdministration(ctx contractapi.TransactionContextInterface, newAdminID string, newAdminMSPID string) error {
	actor, err := s.getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("TransferRegistryAdministration: failed to get actor info: %w", err)
	}
	im := NewIdentityManager(ctx)
	if err := im.RequireAdministrator(); err != nil {
		return fmt.Errorf("TransferRegistryAdministration: %w", err)
	}

	newAdminID = strings.TrimSpace(newAdminID)
	if err := s.validateRequiredString(newAdminID, "newAdminID", maxStringInputLength*4); err != nil {
		return err
	}
	if !isValidX509ID(newAdminID) {
		return fmt.Errorf("%w: newAdminID '%s' is not a valid X.509 ID format", ErrInvalidInput, newAdminID)
	}
	if err := s.validateOptionalString(newAdminMSPID, "newAdminMSPID", maxStringInputLength); err != nil {
		return err
	}
	if newAdminID == actor.fullID {
		logger.Infof("TransferRegistryAdministration: '%s' is already the administrator. No changes made.", newAdminID)
		return nil
	}
	if strings.TrimSpace(newAdminMSPID) == "" {
		newAdminMSPID = actor.mspID
	}

	position, err := store.NewSequence(ctx.GetStub()).Current()
	if err != nil {
		return fmt.Errorf("TransferRegistryAdministration: %w", err)
	}
	if _, err := im.AssignAdministrator(newAdminID, newAdminMSPID, actor.fullID, position); err != nil {
		return fmt.Errorf("TransferRegistryAdministration: %w", err)
	}

	s.emitRegistryEvent(ctx, EventRegistryAdministratorTransferred, actor, map[string]interface{}{
		"previousAdministratorFullId": actor.fullID,
		"administratorFullId":         newAdminID,
		"administratorMspId":          newAdminMSPID,
	})
	logger.Infof("Registry administration transferred from '%s' to '%s'.", actor.fullID, newAdminID)
	return nil
}

// GetLedgerSequence returns the position the next profile creation will take.
func (s *RegistryContract) GetLedgerSequence(ctx contractapi.TransactionContextInterface) (uint64, error) {
	pos, err := store.NewSequence(ctx.GetStub()).Current()
	if err != nil {
		return 0, fmt.Errorf("GetLedgerSequence: %w", err)
	}
	return pos, nil
}

// GetCallerIdentity reports who the chaincode sees as the invoker.
func (s *RegistryContract) GetCallerIdentity(ctx contractapi.TransactionContextInterface) (*model.CallerIdentity, error) {
	actor, err := s.getCurrentActorInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetCallerIdentity: %w", err)
	}
	isAdmin, err := NewIdentityManager(ctx).IsAdministrator(actor.fullID)
	if err != nil {
		return nil, fmt.Errorf("GetCallerIdentity: failed to check administrator status: %w", err)
	}
	return &model.CallerIdentity{FullID: actor.fullID, MSPID: actor.mspID, IsAdministrator: isAdmin}, nil
}
