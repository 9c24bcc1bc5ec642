package store

import (
	"fmt"

	"lexercore/model"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// ProfileStore maps a caller identity to its participant profile.
type ProfileStore interface {
	Get(owner string) (*model.ParticipantProfile, error)
	Upsert(owner string, update model.ProfileUpdate, position uint64) (*model.ParticipantProfile, bool, error)
}

// profileRecord is the ledger representation of a profile.
type profileRecord struct {
	ObjectType            string `json:"objectType"` // "ParticipantProfile"
	Owner                 string `json:"owner"`
	Active                bool   `json:"active"`
	Alias                 string `json:"alias,omitempty"`
	MetadataURL           string `json:"metadataUrl,omitempty"`
	RegistrationTimestamp uint64 `json:"registrationTimestamp"`
}

func (r *profileRecord) view() *model.ParticipantProfile {
	return &model.ParticipantProfile{
		Active:                r.Active,
		Alias:                 r.Alias,
		MetadataURL:           r.MetadataURL,
		RegistrationTimestamp: r.RegistrationTimestamp,
	}
}

// LedgerProfileStore is the world-state implementation of ProfileStore.
type LedgerProfileStore struct {
	stub shim.ChaincodeStubInterface
}

// NewProfileStore returns a ProfileStore bound to the current transaction's stub.
func NewProfileStore(stub shim.ChaincodeStubInterface) *LedgerProfileStore {
	return &LedgerProfileStore{stub: stub}
}

// Get returns the profile owned by owner, or nil when none exists.
func (ps *LedgerProfileStore) Get(owner string) (*model.ParticipantProfile, error) {
	rec, err := ps.load(owner)
	if err != nil || rec == nil {
		return nil, err
	}
	return rec.view(), nil
}

// Upsert creates the owner's profile or replaces its content fields. Absent
// fields in update clear the stored value. position is recorded as the
// registration timestamp only when the profile is created. The returned bool
// reports whether a new profile was created.
func (ps *LedgerProfileStore) Upsert(owner string, update model.ProfileUpdate, position uint64) (*model.ParticipantProfile, bool, error) {
	key, err := createKey(ps.stub, profileObjectType, owner)
	if err != nil {
		return nil, false, err
	}
	rec, err := ps.load(owner)
	if err != nil {
		return nil, false, err
	}

	created := rec == nil
	if created {
		rec = &profileRecord{
			ObjectType:            profileObjectType,
			Owner:                 owner,
			RegistrationTimestamp: position,
		}
	}
	rec.Active = true
	rec.Alias = update.Alias
	rec.MetadataURL = update.MetadataURL

	if err := putJSON(ps.stub, key, rec); err != nil {
		return nil, false, fmt.Errorf("profile for '%s': %w", owner, err)
	}
	storeLogger.Debugf("Profile for '%s' saved (created: %t, registrationTimestamp: %d)", owner, created, rec.RegistrationTimestamp)
	return rec.view(), created, nil
}

func (ps *LedgerProfileStore) load(owner string) (*profileRecord, error) {
	key, err := createKey(ps.stub, profileObjectType, owner)
	if err != nil {
		return nil, err
	}
	var rec profileRecord
	found, err := getJSON(ps.stub, key, &rec)
	if err != nil {
		return nil, fmt.Errorf("profile for '%s': %w", owner, err)
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}
