package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// ApprovalFunc is the signing prompt. Returning an error declines the action.
type ApprovalFunc func(ctx context.Context, address common.Address, action string) error

// AutoApprove accepts every prompt
func AutoApprove(context.Context, common.Address, string) error {
	return nil
}

// DenyAll declines every prompt the way a user clicking "reject" would
func DenyAll(_ context.Context, address common.Address, action string) error {
	return fmt.Errorf("%s for %s: %w", action, address.Hex(), helpers.ErrUserRejected)
}

// KeySigner signs with a local secp256k1 key after the prompt approves
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
	approve ApprovalFunc
}

// NewKeySigner wraps key. A nil approve func means AutoApprove.
func NewKeySigner(key *ecdsa.PrivateKey, approve ApprovalFunc) *KeySigner {
	if approve == nil {
		approve = AutoApprove
	}
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		approve: approve,
	}
}

// Address returns the signer's account
func (s *KeySigner) Address() common.Address {
	return s.address
}

// Approve runs the signing prompt for action
func (s *KeySigner) Approve(ctx context.Context, action string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.approve(ctx, s.address, action)
}

// SignTx signs tx for chainID using the latest signer rules
func (s *KeySigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

// ParsePrivateKey decodes a hex private key with or without the 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	trimmed := strings.TrimSpace(hexKey)
	if !helpers.IsPrivateKeyValid(trimmed) {
		return nil, fmt.Errorf("invalid private key format")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return key, nil
}
