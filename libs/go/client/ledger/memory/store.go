// Package memory is an in-process ledger used for local runs and tests.
package memory

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"github.com/ethereum/go-ethereum/crypto"
)

// Store keeps ledger entries in a map. Writes still go through the signing
// prompt when a signer source is configured.
type Store struct {
	mu        sync.RWMutex
	data      map[string][]byte
	available bool
	nonce     uint64
	signers   interfaces.SignerSource
}

var _ interfaces.LedgerClient = (*Store)(nil)

// New returns an empty, available store. signers may be nil.
func New(signers interfaces.SignerSource) *Store {
	return &Store{
		data:      make(map[string][]byte),
		available: true,
		signers:   signers,
	}
}

// Backend names this ledger
func (s *Store) Backend() string {
	return constants.LedgerBackendMemory
}

// SetAvailable toggles the isAvailable answer
func (s *Store) SetAvailable(available bool) {
	s.mu.Lock()
	s.available = available
	s.mu.Unlock()
}

// IsAvailable reports the configured availability
func (s *Store) IsAvailable(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available, nil
}

// GetData returns a copy of the value under key, or nil when absent
func (s *Store) GetData(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// SetData overwrites key after the active signer approves
func (s *Store) SetData(ctx context.Context, key string, value []byte) (*business.LedgerReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.signers != nil {
		signer, err := s.signers.Signer()
		if err != nil {
			return nil, err
		}
		if err := signer.Approve(ctx, fmt.Sprintf("setData(%s)", key)); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.nonce++
	nonce := s.nonce
	s.mu.Unlock()

	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)

	return &business.LedgerReceipt{
		TxHash:  crypto.Keccak256Hash([]byte(key), value, n[:]).Hex(),
		Status:  1,
		Backend: constants.LedgerBackendMemory,
	}, nil
}

// Keys lists the stored keys in no particular order
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
