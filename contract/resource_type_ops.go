package contract

import (
	"fmt"

	"lexercore/model"
	"lexercore/store"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Resource Types ---

// RegisterResourceType creates or overwrites the definition stored under id.
// Only the registry administrator may call it.
func (s *RegistryContract) RegisterResourceType(ctx contractapi.TransactionContextInterface,
	id string, name string, description string, confidentialityLevel uint) error {

	actor, err := s.getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("RegisterResourceType: failed to get actor info: %w", err)
	}
	if err := NewIdentityManager(ctx).RequireAdministrator(); err != nil {
		return fmt.Errorf("RegisterResourceType: %w", err)
	}

	logger.Infof("Administrator '%s' registering resource type '%s': %s", actor.fullID, id, name)

	if err := s.validateKey(id, "id", maxResourceTypeIDLength); err != nil {
		return err
	}
	if err := s.validateRequiredString(name, "name", maxStringInputLength); err != nil {
		return err
	}
	if err := s.validateOptionalString(description, "description", maxDescriptionLength); err != nil {
		return err
	}
	if !model.IsValidConfidentialityLevel(confidentialityLevel) {
		return fmt.Errorf("%w: confidentialityLevel %d is outside the valid range 0-%d",
			ErrInvalidInput, confidentialityLevel, model.MaxConfidentialityLevel)
	}

	var resourceTypes store.ResourceTypeStore = store.NewResourceTypeStore(ctx.GetStub())
	created, err := resourceTypes.Upsert(id, model.ResourceType{
		Name:                 name,
		Description:          description,
		ConfidentialityLevel: confidentialityLevel,
	})
	if err != nil {
		return fmt.Errorf("RegisterResourceType: failed to save resource type '%s': %w", id, err)
	}

	s.emitRegistryEvent(ctx, EventResourceTypeRegistered, actor, map[string]interface{}{
		"resourceTypeId":       id,
		"name":                 name,
		"confidentialityLevel": confidentialityLevel,
		"confidentiality":      model.ConfidentialityName(confidentialityLevel),
		"created":              created,
	})
	logger.Infof("Resource type '%s' registered by '%s' (created: %t)", id, actor.fullID, created)
	return nil
}

// GetResourceTypeDetails returns the definition registered under id, or nil
// when id is unknown.
func (s *RegistryContract) GetResourceTypeDetails(ctx contractapi.TransactionContextInterface, id string) (*model.ResourceType, error) {
	logger.Debugf("GetResourceTypeDetails: Querying resource type '%s'", id)
	if store.ValidateKey(id) != nil {
		return nil, nil
	}
	var resourceTypes store.ResourceTypeStore = store.NewResourceTypeStore(ctx.GetStub())
	rt, err := resourceTypes.Get(id)
	if err != nil {
		return nil, fmt.Errorf("GetResourceTypeDetails: %w", err)
	}
	return rt, nil
}
