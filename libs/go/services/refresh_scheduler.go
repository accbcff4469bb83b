package services

import (
	"context"
	"sync"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"go.uber.org/zap"
)

// RefreshScheduler reloads the route snapshot on a fixed interval
type RefreshScheduler struct {
	routes   interfaces.RouteService
	session  *SessionState
	interval time.Duration
	logger   *zap.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	stopCh   chan struct{}
	wg       sync.WaitGroup
	startMu  sync.Mutex
	started  bool
	stopOnce sync.Once
}

// NewRefreshScheduler creates a scheduler. An interval of zero or less disables it.
func NewRefreshScheduler(routes interfaces.RouteService, session *SessionState, interval time.Duration) *RefreshScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &RefreshScheduler{
		routes:   routes,
		session:  session,
		interval: interval,
		logger:   logger.Log,
		ctx:      ctx,
		cancel:   cancel,
		stopCh:   make(chan struct{}),
	}
}

// Start begins polling. It is a no-op when disabled or already started.
func (s *RefreshScheduler) Start() {
	if s.interval <= 0 {
		s.logger.Info("Route refresh scheduler disabled")
		return
	}

	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started {
		return
	}
	s.started = true

	s.logger.Info("Starting route refresh scheduler", zap.Duration("interval", s.interval))
	s.wg.Add(1)
	go s.run()
}

// Stop halts polling and waits for an in-flight refresh to return
func (s *RefreshScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping route refresh scheduler")
		s.cancel()
		close(s.stopCh)
		s.wg.Wait()
	})
}

func (s *RefreshScheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			state := s.session.Refresh(s.ctx, s.routes)
			s.logger.Debug("Scheduled route refresh finished", zap.Int("routes", len(state.Routes)))
		case <-s.stopCh:
			return
		}
	}
}
