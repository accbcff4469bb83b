package services

import (
	"context"
	"sync"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"go.uber.org/zap"
)

// SessionState is the server's single AppState holder. Route operations take
// a snapshot, work on it without holding the lock and commit the routes back.
type SessionState struct {
	mu    sync.RWMutex
	state business.AppState
}

// NewSessionState returns an empty, disconnected session
func NewSessionState() *SessionState {
	return &SessionState{state: business.AppState{Routes: []business.Route{}}}
}

// Snapshot returns a copy of the current state
func (s *SessionState) Snapshot() business.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	routes := make([]business.Route, len(s.state.Routes))
	copy(routes, s.state.Routes)
	return s.state.WithRoutes(routes)
}

// Account returns the connected account, or "" when disconnected
func (s *SessionState) Account() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Account
}

// SetAccount replaces the connected account
func (s *SessionState) SetAccount(account string) {
	s.mu.Lock()
	s.state = s.state.WithAccount(account)
	s.mu.Unlock()
}

// SetRoutes replaces the route snapshot as a whole
func (s *SessionState) SetRoutes(routes []business.Route) {
	if routes == nil {
		routes = []business.Route{}
	}
	s.mu.Lock()
	s.state = s.state.WithRoutes(routes)
	s.mu.Unlock()
}

// OnAccountsChanged follows the wallet's accountsChanged stream. The first
// account is the active one; an empty list means the wallet disconnected.
func (s *SessionState) OnAccountsChanged(accounts []string) {
	account := ""
	if len(accounts) > 0 {
		account = accounts[0]
	}
	logger.Log.Info("Session account changed", zap.String("account", account))
	s.SetAccount(account)
}

// Commit takes the routes of next unless the session already holds a
// snapshot from a load that started later. The account is left alone.
// It returns the resulting state.
func (s *SessionState) Commit(next business.AppState) business.AppState {
	routes := next.Routes
	if routes == nil {
		routes = []business.Route{}
	}

	s.mu.Lock()
	if next.LoadedAt.Before(s.state.LoadedAt) {
		logger.Log.Debug("Discarding stale route snapshot",
			zap.Time("loaded_at", next.LoadedAt),
			zap.Time("current_loaded_at", s.state.LoadedAt),
		)
	} else {
		s.state = s.state.WithRoutes(routes)
		s.state.LoadedAt = next.LoadedAt
	}
	s.mu.Unlock()

	return s.Snapshot()
}

// Refresh runs LoadAll against the current snapshot and commits the result
func (s *SessionState) Refresh(ctx context.Context, routes interfaces.RouteService) business.AppState {
	return s.Commit(routes.LoadAll(ctx, s.Snapshot()))
}
