// Package ledger selects the LedgerClient implementation for a deployment.
package ledger

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/ledger/contract"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/ledger/memory"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/ledger/postgres"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"go.uber.org/zap"
)

// Config picks and configures a backend
type Config struct {
	Backend string

	// contract
	RPCURL          string
	ContractAddress string
	ChainID         *big.Int
	PollInterval    time.Duration
	ReceiptTimeout  time.Duration

	// postgres
	DatabaseURL string
}

// Closer releases backend resources. It is a no-op for the memory backend.
type Closer func()

// New builds the configured backend. An empty Backend means memory.
func New(ctx context.Context, cfg Config, signers interfaces.SignerSource) (interfaces.LedgerClient, Closer, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = constants.LedgerBackendMemory
	}

	switch backend {
	case constants.LedgerBackendMemory:
		logger.Log.Info("Using in-memory ledger")
		return memory.New(signers), func() {}, nil

	case constants.LedgerBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("postgres ledger requires a database URL")
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.New(pool, signers)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Log.Info("Using postgres ledger")
		return store, pool.Close, nil

	case constants.LedgerBackendContract:
		if cfg.RPCURL == "" {
			return nil, nil, fmt.Errorf("contract ledger requires an RPC URL")
		}
		client, err := contract.Dial(ctx, cfg.RPCURL, signers, contract.Config{
			ContractAddress: cfg.ContractAddress,
			ChainID:         cfg.ChainID,
			PollInterval:    cfg.PollInterval,
			ReceiptTimeout:  cfg.ReceiptTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Log.Info("Using contract ledger", zap.String("contract", cfg.ContractAddress))
		return client, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown ledger backend %q", backend)
}
