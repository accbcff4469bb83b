package interfaces

import (
	"context"
	"math/big"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// LedgerClient is the key/value ledger that backs route persistence.
// An empty value from GetData means the key is absent.
type LedgerClient interface {
	IsAvailable(ctx context.Context) (bool, error)
	GetData(ctx context.Context, key string) ([]byte, error)
	SetData(ctx context.Context, key string, value []byte) (*business.LedgerReceipt, error)
	Backend() string
}

// Signer is the authenticated identity that approves and signs ledger writes
type Signer interface {
	Address() common.Address
	// Approve runs the signing prompt. It returns an error wrapping
	// helpers.ErrUserRejected when the prompt is declined.
	Approve(ctx context.Context, action string) error
	SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// SignerSource yields the signer for the active account
type SignerSource interface {
	Signer() (Signer, error)
}

// WalletProvider exposes the accounts a user can connect with
type WalletProvider interface {
	SignerSource
	RequestAccounts(ctx context.Context) ([]string, error)
	SelectAccount(address string) error
	Accounts() []string
}

// EventPublisher fans route events out to downstream consumers
type EventPublisher interface {
	PublishRouteEvent(ctx context.Context, event business.RouteEvent) error
}
