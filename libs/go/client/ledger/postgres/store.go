// Package postgres stores ledger entries in a Postgres table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS ledger_entries (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	tx_hash    TEXT NOT NULL,
	updated_by TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	getDataSQL = `SELECT value FROM ledger_entries WHERE key = $1`

	setDataSQL = `INSERT INTO ledger_entries (key, value, tx_hash, updated_by, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    tx_hash = EXCLUDED.tx_hash,
    updated_by = EXCLUDED.updated_by,
    updated_at = EXCLUDED.updated_at`
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Pinger is implemented by connections that can report liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is a LedgerClient backed by the ledger_entries table
type Store struct {
	db      DBTX
	signers interfaces.SignerSource
	now     func() time.Time
}

var _ interfaces.LedgerClient = (*Store)(nil)

// New wraps db. signers may be nil, in which case writes are attributed to nobody.
func New(db DBTX, signers interfaces.SignerSource) *Store {
	return &Store{db: db, signers: signers, now: time.Now}
}

// NewPool opens a connection pool for dsn
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Minute * 30
	poolConfig.MaxConnIdleTime = time.Minute * 15

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the ledger_entries table if needed
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create ledger_entries: %w", err)
	}
	return nil
}

// Backend names this ledger
func (s *Store) Backend() string {
	return constants.LedgerBackendPostgres
}

// IsAvailable pings the database when the connection supports it
func (s *Store) IsAvailable(ctx context.Context) (bool, error) {
	p, ok := s.db.(Pinger)
	if !ok {
		return true, nil
	}
	if err := p.Ping(ctx); err != nil {
		logger.Log.Warn("Ledger database ping failed", zap.Error(err))
		return false, nil
	}
	return true, nil
}

// GetData returns the value under key, or nil when no row exists
func (s *Store) GetData(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, getDataSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger key %s: %w", key, err)
	}
	return value, nil
}

// SetData upserts key after the active signer approves
func (s *Store) SetData(ctx context.Context, key string, value []byte) (*business.LedgerReceipt, error) {
	updatedBy := ""
	if s.signers != nil {
		signer, err := s.signers.Signer()
		if err != nil {
			return nil, err
		}
		if err := signer.Approve(ctx, fmt.Sprintf("setData(%s)", key)); err != nil {
			return nil, err
		}
		updatedBy = signer.Address().Hex()
	}

	now := s.now()
	txHash := crypto.Keccak256Hash([]byte(key), value, []byte(now.Format(time.RFC3339Nano))).Hex()

	tag, err := s.db.Exec(ctx, setDataSQL, key, value, txHash, updatedBy, now)
	if err != nil {
		return nil, fmt.Errorf("failed to write ledger key %s: %w", key, err)
	}
	if tag.RowsAffected() != 1 {
		return nil, fmt.Errorf("failed to write ledger key %s: %d rows affected", key, tag.RowsAffected())
	}

	return &business.LedgerReceipt{
		TxHash:  txHash,
		Status:  1,
		Backend: constants.LedgerBackendPostgres,
	}, nil
}
