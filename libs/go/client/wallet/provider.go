package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

var (
	// ErrNoAccounts is returned when no account is configured or connected
	ErrNoAccounts = errors.New("no wallet accounts available")
	// ErrUnknownAccount is returned when selecting an address the wallet does not hold
	ErrUnknownAccount = errors.New("account not found in wallet")
	// ErrUserRejected is the signing prompt rejection
	ErrUserRejected = helpers.ErrUserRejected
)

// AccountsChangedFunc receives the connected accounts, active one first.
// An empty slice means the wallet disconnected.
type AccountsChangedFunc func(accounts []string)

// Provider is a server-side stand-in for a browser wallet: it holds keys,
// hands out the connected accounts and emits accountsChanged.
type Provider struct {
	mu       sync.RWMutex
	keys     []*ecdsa.PrivateKey
	addrs    []common.Address
	selected int
	approve  ApprovalFunc

	subMu  sync.Mutex
	subs   map[uint64]AccountsChangedFunc
	nextID uint64

	logger *zap.Logger
}

var _ interfaces.WalletProvider = (*Provider)(nil)

// NewProvider builds a provider from hex private keys. The first key is
// selected once the caller connects via RequestAccounts.
func NewProvider(hexKeys []string, approve ApprovalFunc) (*Provider, error) {
	p := &Provider{
		selected: -1,
		approve:  approve,
		subs:     make(map[uint64]AccountsChangedFunc),
		logger:   logger.Log,
	}

	for i, hk := range hexKeys {
		if strings.TrimSpace(hk) == "" {
			continue
		}
		key, err := ParsePrivateKey(hk)
		if err != nil {
			return nil, fmt.Errorf("wallet key %d: %w", i, err)
		}
		p.keys = append(p.keys, key)
		p.addrs = append(p.addrs, crypto.PubkeyToAddress(key.PublicKey))
	}

	return p, nil
}

// RequestAccounts connects the wallet and returns its accounts
func (p *Provider) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if len(p.addrs) == 0 {
		p.mu.Unlock()
		return nil, ErrNoAccounts
	}
	changed := p.selected < 0
	if changed {
		p.selected = 0
	}
	accounts := p.accountsLocked()
	p.mu.Unlock()

	p.logger.Info("Wallet connected", zap.String("account", accounts[0]), zap.Int("accounts", len(accounts)))

	if changed {
		p.emit(accounts)
	}
	return accounts, nil
}

// Accounts returns the connected accounts, active first. It is empty until
// RequestAccounts has been called.
func (p *Provider) Accounts() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selected < 0 {
		return []string{}
	}
	return p.accountsLocked()
}

// SelectAccount switches the active account. Addresses compare case-insensitively.
func (p *Provider) SelectAccount(address string) error {
	p.mu.Lock()
	idx := -1
	for i, a := range p.addrs {
		if helpers.SameAddress(a.Hex(), address) {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownAccount, address)
	}
	changed := p.selected != idx
	p.selected = idx
	accounts := p.accountsLocked()
	p.mu.Unlock()

	if changed {
		p.logger.Info("Wallet account changed", zap.String("account", accounts[0]))
		p.emit(accounts)
	}
	return nil
}

// Disconnect drops the active account and notifies subscribers
func (p *Provider) Disconnect() {
	p.mu.Lock()
	wasConnected := p.selected >= 0
	p.selected = -1
	p.mu.Unlock()

	if wasConnected {
		p.emit([]string{})
	}
}

// Signer returns the signer for the active account
func (p *Provider) Signer() (interfaces.Signer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selected < 0 {
		return nil, ErrNoAccounts
	}
	return NewKeySigner(p.keys[p.selected], p.approve), nil
}

// Subscribe registers fn for accountsChanged notifications
func (p *Provider) Subscribe(fn AccountsChangedFunc) *Subscription {
	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.subMu.Unlock()

	return &Subscription{unsubscribe: func() {
		p.subMu.Lock()
		delete(p.subs, id)
		p.subMu.Unlock()
	}}
}

func (p *Provider) emit(accounts []string) {
	p.subMu.Lock()
	listeners := make([]AccountsChangedFunc, 0, len(p.subs))
	for _, fn := range p.subs {
		listeners = append(listeners, fn)
	}
	p.subMu.Unlock()

	for _, fn := range listeners {
		fn(append([]string(nil), accounts...))
	}
}

// accountsLocked lists addresses with the selected one first. Caller holds mu.
func (p *Provider) accountsLocked() []string {
	out := make([]string, 0, len(p.addrs))
	out = append(out, p.addrs[p.selected].Hex())
	for i, a := range p.addrs {
		if i != p.selected {
			out = append(out, a.Hex())
		}
	}
	return out
}

// Subscription is a handle on an accountsChanged listener
type Subscription struct {
	once        sync.Once
	unsubscribe func()
}

// Unsubscribe stops delivery. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.unsubscribe)
}
