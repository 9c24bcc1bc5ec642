package store

import (
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// Sequence is the registry's profile creation counter. Chaincode cannot
// observe block height, so each new profile takes the current position as its
// registration timestamp and advances the counter by one. It starts at 0.
type Sequence struct {
	stub shim.ChaincodeStubInterface
}

// NewSequence returns the sequence counter for the current transaction's stub.
func NewSequence(stub shim.ChaincodeStubInterface) *Sequence {
	return &Sequence{stub: stub}
}

func (s *Sequence) key() (string, error) {
	return s.stub.CreateCompositeKey(sequenceObjectType, []string{})
}

// Current returns the position the next write will take.
func (s *Sequence) Current() (uint64, error) {
	key, err := s.key()
	if err != nil {
		return 0, fmt.Errorf("failed to create sequence key: %w", err)
	}
	raw, err := s.stub.GetState(key)
	if err != nil {
		return 0, fmt.Errorf("failed to read registry sequence: %w", err)
	}
	if raw == nil {
		return 0, nil
	}
	pos, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: registry sequence '%s': %v", ErrCorruptRecord, string(raw), err)
	}
	return pos, nil
}

// Next returns the current position and advances the counter. Call it only
// when a profile is about to be created.
func (s *Sequence) Next() (uint64, error) {
	pos, err := s.Current()
	if err != nil {
		return 0, err
	}
	key, err := s.key()
	if err != nil {
		return 0, fmt.Errorf("failed to create sequence key: %w", err)
	}
	if err := s.stub.PutState(key, []byte(strconv.FormatUint(pos+1, 10))); err != nil {
		return 0, fmt.Errorf("failed to advance registry sequence: %w", err)
	}
	return pos, nil
}
