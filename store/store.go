// Package store keeps the registry's world-state maps behind explicit Get/Upsert
// types. Each store owns its composite-key namespace; nothing else in the
// chaincode reads or writes those keys.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric/common/flogging"
)

var storeLogger = flogging.MustGetLogger("lexercore.store")

// Object types for composite keys, also written as 'objectType' in each record.
const (
	profileObjectType      = "ParticipantProfile" // Attribute for composite key: owner FullID.
	resourceTypeObjectType = "ResourceType"       // Attribute for composite key: resource type ID.
	sequenceObjectType     = "RegistrySequence"   // Singleton, no attributes.
)

var (
	// ErrEmptyKey indicates a lookup or write was attempted with a blank key.
	ErrEmptyKey = errors.New("store: key cannot be empty")

	// ErrInvalidKey indicates a key Fabric cannot encode into a composite key.
	ErrInvalidKey = errors.New("store: invalid key")

	// ErrCorruptRecord indicates a ledger value that cannot be decoded.
	ErrCorruptRecord = errors.New("store: corrupt record")
)

// ValidateKey reports whether id can key a record. Composite key attributes
// must be non-blank valid UTF-8 without U+0000 or U+10FFFF.
func ValidateKey(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyKey
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidKey)
	}
	if strings.ContainsRune(id, 0) || strings.ContainsRune(id, utf8.MaxRune) {
		return fmt.Errorf("%w: U+0000 and U+10FFFF are not allowed", ErrInvalidKey)
	}
	return nil
}

func createKey(stub shim.ChaincodeStubInterface, objectType, id string) (string, error) {
	if err := ValidateKey(id); err != nil {
		return "", fmt.Errorf("%s: %w", objectType, err)
	}
	return stub.CreateCompositeKey(objectType, []string{id})
}

// getJSON loads key into out. It reports false when the key is not on the ledger.
func getJSON(stub shim.ChaincodeStubInterface, key string, out interface{}) (bool, error) {
	raw, err := stub.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read '%s' from ledger: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%w: '%s': %v", ErrCorruptRecord, key, err)
	}
	return true, nil
}

func putJSON(stub shim.ChaincodeStubInterface, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal '%s': %w", key, err)
	}
	if err := stub.PutState(key, raw); err != nil {
		return fmt.Errorf("failed to save '%s' to ledger: %w", key, err)
	}
	return nil
}
