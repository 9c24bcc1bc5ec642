package contract

import (
	"fmt"

	"lexercore/model"
	"lexercore/store"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Participant Profiles ---

// UpdateParticipantProfile creates or replaces the caller's own profile. An
// empty alias or metadataURL is stored as absent, clearing any previous value.
// The registration timestamp is fixed by the first call and never changes.
func (s *RegistryContract) UpdateParticipantProfile(ctx contractapi.TransactionContextInterface, alias string, metadataURL string) error {
	actor, err := s.getCurrentActorInfo(ctx)
	if err != nil {
		return fmt.Errorf("UpdateParticipantProfile: failed to get actor info: %w", err)
	}

	var profiles store.ProfileStore = store.NewProfileStore(ctx.GetStub())
	existing, err := profiles.Get(actor.fullID)
	if err != nil {
		return fmt.Errorf("UpdateParticipantProfile: %w", err)
	}

	// Only creation takes a sequence position, so updates never touch the counter.
	var position uint64
	if existing == nil {
		position, err = store.NewSequence(ctx.GetStub()).Next()
		if err != nil {
			return fmt.Errorf("UpdateParticipantProfile: %w", err)
		}
	}

	profile, created, err := profiles.Upsert(actor.fullID, model.ProfileUpdate{Alias: alias, MetadataURL: metadataURL}, position)
	if err != nil {
		return fmt.Errorf("UpdateParticipantProfile: failed to save profile for '%s': %w", actor.fullID, err)
	}

	s.emitRegistryEvent(ctx, EventParticipantProfileUpdated, actor, map[string]interface{}{
		"owner":                 actor.fullID,
		"created":               created,
		"registrationTimestamp": profile.RegistrationTimestamp,
	})
	if created {
		logger.Infof("Profile created for '%s' at sequence %d", actor.fullID, profile.RegistrationTimestamp)
	} else {
		logger.Infof("Profile updated for '%s'", actor.fullID)
	}
	return nil
}

// GetParticipantProfile returns the profile owned by identity, or nil when the
// identity has never written one. Any caller may read any profile.
func (s *RegistryContract) GetParticipantProfile(ctx contractapi.TransactionContextInterface, identity string) (*model.ParticipantProfile, error) {
	logger.Debugf("GetParticipantProfile: Querying profile for '%s'", identity)
	if store.ValidateKey(identity) != nil {
		return nil, nil
	}
	var profiles store.ProfileStore = store.NewProfileStore(ctx.GetStub())
	profile, err := profiles.Get(identity)
	if err != nil {
		return nil, fmt.Errorf("GetParticipantProfile: %w", err)
	}
	return profile, nil
}
