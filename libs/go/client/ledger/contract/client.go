// Package contract talks to the on-chain key/value ledger contract.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// LedgerABI is the interface of the deployed key/value contract
const LedgerABI = `[
	{"type":"function","name":"isAvailable","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getData","stateMutability":"view","inputs":[{"name":"key","type":"string"}],"outputs":[{"name":"","type":"bytes"}]},
	{"type":"function","name":"setData","stateMutability":"nonpayable","inputs":[{"name":"key","type":"string"},{"name":"value","type":"bytes"}],"outputs":[]}
]`

const (
	defaultPollInterval = 2 * time.Second
	gasLimitNumerator   = 6
	gasLimitDenominator = 5
)

// Backend is the chain access the client needs. *ethclient.Client satisfies it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Config configures the contract client
type Config struct {
	ContractAddress string
	// ChainID is looked up from the node when nil
	ChainID        *big.Int
	PollInterval   time.Duration
	ReceiptTimeout time.Duration
}

// Client is a LedgerClient backed by the ledger contract
type Client struct {
	backend Backend
	address common.Address
	abi     abi.ABI
	signers interfaces.SignerSource
	cfg     Config
	logger  *zap.Logger

	chainMu sync.Mutex
	chainID *big.Int
}

var _ interfaces.LedgerClient = (*Client)(nil)

// Dial connects to rpcURL and builds a client
func Dial(ctx context.Context, rpcURL string, signers interfaces.SignerSource, cfg Config) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger RPC: %w", err)
	}
	return New(ec, signers, cfg)
}

// New builds a client over an existing backend
func New(backend Backend, signers interfaces.SignerSource, cfg Config) (*Client, error) {
	if !helpers.IsAddressValid(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid ledger contract address: %q", cfg.ContractAddress)
	}
	parsed, err := abi.JSON(strings.NewReader(LedgerABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger ABI: %w", err)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = constants.DefaultReceiptTimeout
	}

	return &Client{
		backend: backend,
		address: common.HexToAddress(cfg.ContractAddress),
		abi:     parsed,
		signers: signers,
		cfg:     cfg,
		logger:  logger.Log,
		chainID: cfg.ChainID,
	}, nil
}

// Backend names this ledger
func (c *Client) Backend() string {
	return constants.LedgerBackendContract
}

// IsAvailable calls isAvailable()
func (c *Client) IsAvailable(ctx context.Context) (bool, error) {
	out, err := c.call(ctx, "isAvailable")
	if err != nil {
		return false, err
	}
	available, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("isAvailable returned %T", out[0])
	}
	return available, nil
}

// GetData calls getData(key). Absent keys come back empty.
func (c *Client) GetData(ctx context.Context, key string) ([]byte, error) {
	out, err := c.call(ctx, "getData", key)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	value, ok := out[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("getData returned %T", out[0])
	}
	return value, nil
}

// SetData sends a signed setData(key, value) transaction and waits for it to be mined
func (c *Client) SetData(ctx context.Context, key string, value []byte) (*business.LedgerReceipt, error) {
	if c.signers == nil {
		return nil, errors.New("ledger client has no signer")
	}
	signer, err := c.signers.Signer()
	if err != nil {
		return nil, err
	}
	if err := signer.Approve(ctx, fmt.Sprintf("setData(%s)", key)); err != nil {
		return nil, err
	}

	data, err := c.abi.Pack("setData", key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to pack setData: %w", err)
	}

	tx, chainID, err := c.buildTx(ctx, signer.Address(), data)
	if err != nil {
		return nil, err
	}

	signed, err := signer.SignTx(ctx, tx, chainID)
	if err != nil {
		return nil, err
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send setData transaction: %w", err)
	}

	c.logger.Debug("setData transaction sent",
		zap.String("key", key),
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", signed.Nonce()),
	)

	receipt, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}

	result := &business.LedgerReceipt{
		TxHash:  receipt.TxHash.Hex(),
		Status:  receipt.Status,
		GasUsed: receipt.GasUsed,
		Backend: constants.LedgerBackendContract,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return result, fmt.Errorf("setData transaction %s reverted", result.TxHash)
	}
	return result, nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	raw, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	if len(raw) == 0 {
		if method == "isAvailable" {
			return nil, fmt.Errorf("no ledger contract at %s", c.address.Hex())
		}
		return nil, nil
	}

	out, err := c.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no values", method)
	}
	return out, nil
}

// buildTx prepares an unsigned EIP-1559 transaction to the ledger contract
func (c *Client) buildTx(ctx context.Context, from common.Address, data []byte) (*types.Transaction, *big.Int, error) {
	chainID, err := c.resolveChainID(ctx)
	if err != nil {
		return nil, nil, err
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}

	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	baseFee := big.NewInt(0)
	if head.BaseFee != nil {
		baseFee = head.BaseFee
	}
	feeCap := new(big.Int).Add(tip, new(big.Int).Mul(baseFee, big.NewInt(2)))

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &c.address, Data: data})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas = gas * gasLimitNumerator / gasLimitDenominator

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &c.address,
		Value:     big.NewInt(0),
		Data:      data,
	})
	return tx, chainID, nil
}

func (c *Client) resolveChainID(ctx context.Context) (*big.Int, error) {
	c.chainMu.Lock()
	defer c.chainMu.Unlock()
	if c.chainID != nil {
		return c.chainID, nil
	}
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	c.chainID = id
	return id, nil
}

// waitMined polls for the receipt until it appears or the timeout passes
func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ReceiptTimeout)
	defer cancel()

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.cfg.PollInterval
	expBackoff.MaxInterval = c.cfg.PollInterval * 4
	expBackoff.MaxElapsedTime = 0

	var receipt *types.Receipt
	operation := func() error {
		r, err := c.backend.TransactionReceipt(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		receipt = r
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", hash.Hex(), err)
	}
	return receipt, nil
}
