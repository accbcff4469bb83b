package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/params"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"go.uber.org/zap"
)

// RouteServiceConfig tunes the route service
type RouteServiceConfig struct {
	// ProcessingDelay is the simulated FHE computation time before a transition
	ProcessingDelay time.Duration
	// StrictTransitions only allows pending -> active -> completed
	StrictTransitions bool
}

// RouteService keeps the route snapshot in sync with the ledger and performs
// create and status transitions as read-modify-write on ledger keys.
type RouteService struct {
	ledger    interfaces.LedgerClient
	notifier  interfaces.Notifier
	publisher interfaces.EventPublisher
	logger    *zap.Logger
	now       func() time.Time

	processingDelay time.Duration
	strict          bool

	// indexMu serializes the index read-modify-write within this process.
	// Writers in other processes still race: last writer wins.
	indexMu    sync.Mutex
	refreshing atomic.Int32
}

var _ interfaces.RouteService = (*RouteService)(nil)

// NewRouteService creates a new route service. publisher may be nil.
func NewRouteService(ledger interfaces.LedgerClient, notifier interfaces.Notifier, publisher interfaces.EventPublisher, cfg RouteServiceConfig) *RouteService {
	return &RouteService{
		ledger:          ledger,
		notifier:        notifier,
		publisher:       publisher,
		logger:          logger.Log,
		now:             time.Now,
		processingDelay: cfg.ProcessingDelay,
		strict:          cfg.StrictTransitions,
	}
}

// IsRefreshing reports whether a LoadAll is in flight
func (s *RouteService) IsRefreshing() bool {
	return s.refreshing.Load() > 0
}

// LoadAll rebuilds the snapshot from the ledger. When the ledger is down or
// the index cannot be fetched the given state is returned untouched. Missing
// and malformed records are skipped.
func (s *RouteService) LoadAll(ctx context.Context, state business.AppState) business.AppState {
	s.refreshing.Add(1)
	defer s.refreshing.Add(-1)
	startedAt := s.now()

	available, err := s.ledger.IsAvailable(ctx)
	if err != nil {
		s.logger.Warn("Ledger availability check failed, keeping current routes",
			zap.String("backend", s.ledger.Backend()),
			zap.Error(err),
		)
		return state
	}
	if !available {
		s.logger.Warn("Ledger is not available, keeping current routes", zap.String("backend", s.ledger.Backend()))
		return state
	}

	ids, err := s.readIndex(ctx)
	if err != nil {
		s.logger.Error("Failed to load route index", zap.Error(err))
		return state
	}

	routes := make([]business.Route, 0, len(ids))
	for _, id := range ids {
		raw, err := s.ledger.GetData(ctx, helpers.RouteKey(id))
		if err != nil {
			s.logger.Warn("Failed to load route, skipping", zap.String("route_id", id), zap.Error(err))
			continue
		}
		if len(raw) == 0 {
			continue
		}

		route, err := decodeRoute(id, raw)
		if err != nil {
			s.logger.Warn("Failed to parse route, skipping", zap.String("route_id", id), zap.Error(err))
			continue
		}
		routes = append(routes, route)
	}

	helpers.SortRoutesByTimestamp(routes)

	s.logger.Debug("Routes loaded", zap.Int("indexed", len(ids)), zap.Int("loaded", len(routes)))
	next := state.WithRoutes(routes)
	next.LoadedAt = startedAt
	return next
}

// Create validates the input, writes a new pending route and appends it to
// the index, then reloads the snapshot.
func (s *RouteService) Create(ctx context.Context, state business.AppState, p params.CreateRouteParams) (business.AppState, error) {
	if state.Account == "" {
		s.notifier.Notify(business.NotificationError, constants.MsgNoWallet)
		return state, ErrNoWallet
	}
	if err := validateCreate(p); err != nil {
		return state, err
	}

	s.notifier.Notify(business.NotificationPending, constants.MsgCreatePending)

	interests := helpers.SortInterests(p.Interests)
	encrypted, err := helpers.EncryptRouteData(helpers.RoutePayload{
		AgeGroup:  p.AgeGroup,
		Interests: interests,
		Museum:    p.Museum,
	})
	if err != nil {
		return state, s.fail(constants.MsgSubmissionFailed, err)
	}

	now := s.now()
	route := business.Route{
		ID:            helpers.NewRouteID(now),
		EncryptedData: encrypted,
		Timestamp:     now.Unix(),
		Owner:         state.Account,
		AgeGroup:      p.AgeGroup,
		Interests:     interests,
		Status:        business.RouteStatusPending,
	}

	raw, err := json.Marshal(route)
	if err != nil {
		return state, s.fail(constants.MsgSubmissionFailed, fmt.Errorf("failed to marshal route: %w", err))
	}

	receipt, err := s.ledger.SetData(ctx, helpers.RouteKey(route.ID), raw)
	if err != nil {
		return state, s.fail(constants.MsgSubmissionFailed, err)
	}

	if err := s.appendToIndex(ctx, route.ID); err != nil {
		return state, s.fail(constants.MsgSubmissionFailed, err)
	}

	s.logger.Info("Route created",
		zap.String("route_id", route.ID),
		zap.String("owner", route.Owner),
		zap.String("tx_hash", receipt.TxHash),
	)
	s.notifier.Notify(business.NotificationSuccess, constants.MsgCreateSuccess)
	s.publish(ctx, business.RouteEvent{
		EventType:  constants.RouteCreatedEvent,
		RouteID:    route.ID,
		Owner:      route.Owner,
		Status:     route.Status,
		Receipt:    *receipt,
		OccurredAt: now.UnixMilli(),
	})

	return s.LoadAll(ctx, state), nil
}

// Transition moves a route to p.Target after the processing delay. Only the
// stored status field is rewritten.
func (s *RouteService) Transition(ctx context.Context, state business.AppState, p params.TransitionRouteParams) (business.AppState, error) {
	if state.Account == "" {
		s.notifier.Notify(business.NotificationError, constants.MsgNoWallet)
		return state, ErrNoWallet
	}
	if !p.Target.IsValid() {
		return state, fmt.Errorf("%w: unknown status %q", ErrValidation, p.Target)
	}

	failPrefix, successMsg := transitionMessages(p.Target)

	s.notifier.Notify(business.NotificationPending, constants.MsgTransitionPending)

	if err := sleepContext(ctx, s.processingDelay); err != nil {
		return state, s.fail(failPrefix, err)
	}

	key := helpers.RouteKey(p.RouteID)
	raw, err := s.ledger.GetData(ctx, key)
	if err != nil {
		return state, s.fail(failPrefix, err)
	}
	if len(raw) == 0 {
		return state, s.fail(failPrefix, fmt.Errorf("%w: %s", ErrRouteNotFound, p.RouteID))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return state, s.fail(failPrefix, fmt.Errorf("failed to parse route %s: stored record is not a JSON object", p.RouteID))
	}

	current := storedStatus(fields)
	if s.strict {
		if current == p.Target {
			s.logger.Info("Route already in target status, nothing to write",
				zap.String("route_id", p.RouteID),
				zap.String("status", string(current)),
			)
			s.notifier.Notify(business.NotificationSuccess, successMsg)
			return s.LoadAll(ctx, state), nil
		}
		if !current.IsValid() || p.Target.Rank() != current.Rank()+1 {
			return state, s.fail(failPrefix, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, p.Target))
		}
	}

	status, err := json.Marshal(p.Target)
	if err != nil {
		return state, s.fail(failPrefix, err)
	}
	fields["status"] = status

	updated, err := json.Marshal(fields)
	if err != nil {
		return state, s.fail(failPrefix, fmt.Errorf("failed to marshal route: %w", err))
	}

	receipt, err := s.ledger.SetData(ctx, key, updated)
	if err != nil {
		return state, s.fail(failPrefix, err)
	}

	var owner string
	_ = json.Unmarshal(fields["owner"], &owner)

	s.logger.Info("Route status changed",
		zap.String("route_id", p.RouteID),
		zap.String("from", string(current)),
		zap.String("to", string(p.Target)),
		zap.String("tx_hash", receipt.TxHash),
	)
	s.notifier.Notify(business.NotificationSuccess, successMsg)
	s.publish(ctx, business.RouteEvent{
		EventType:  constants.RouteStatusChangedEvent,
		RouteID:    p.RouteID,
		Owner:      owner,
		Status:     p.Target,
		PrevStatus: current,
		Receipt:    *receipt,
		OccurredAt: s.now().UnixMilli(),
	})

	return s.LoadAll(ctx, state), nil
}

// CheckAvailability asks the ledger whether it is available and raises a toast
// with the answer
func (s *RouteService) CheckAvailability(ctx context.Context) (bool, error) {
	available, err := s.ledger.IsAvailable(ctx)
	if err != nil {
		s.logger.Error("Ledger availability check failed", zap.Error(err))
		s.notifier.Notify(business.NotificationError, constants.MsgAvailabilityFailed)
		return false, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	if available {
		s.notifier.Notify(business.NotificationSuccess, constants.MsgLedgerAvailable)
	} else {
		s.notifier.Notify(business.NotificationError, constants.MsgLedgerUnavailable)
	}
	return available, nil
}

// readIndex fetches the route index. An empty or unparseable index reads as
// no routes; only transport errors are returned.
func (s *RouteService) readIndex(ctx context.Context) ([]string, error) {
	raw, err := s.ledger.GetData(ctx, constants.RouteIndexKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		s.logger.Warn("Failed to parse route index, treating as empty", zap.String("key", constants.RouteIndexKey), zap.Error(err))
		return []string{}, nil
	}
	return ids, nil
}

func (s *RouteService) appendToIndex(ctx context.Context, id string) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	ids, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	ids = append(ids, id)

	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal route index: %w", err)
	}
	if _, err := s.ledger.SetData(ctx, constants.RouteIndexKey, raw); err != nil {
		return err
	}
	return nil
}

// fail raises the error toast for err and hands err back
func (s *RouteService) fail(prefix string, err error) error {
	msg := constants.MsgUserRejected
	if !helpers.IsUserRejection(err) {
		text := err.Error()
		if strings.TrimSpace(text) == "" {
			text = constants.MsgUnknownError
		}
		msg = prefix + text
	}

	s.logger.Error("Route operation failed", zap.String("message", msg), zap.Error(err))
	s.notifier.Notify(business.NotificationError, msg)
	return err
}

func (s *RouteService) publish(ctx context.Context, event business.RouteEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRouteEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish route event",
			zap.String("event_type", event.EventType),
			zap.String("route_id", event.RouteID),
			zap.Error(err),
		)
	}
}

func validateCreate(p params.CreateRouteParams) error {
	if strings.TrimSpace(p.AgeGroup) == "" {
		return fmt.Errorf("%w: age group is required", ErrValidation)
	}
	if !helpers.IsValidAgeGroup(p.AgeGroup) {
		return fmt.Errorf("%w: unknown age group %q", ErrValidation, p.AgeGroup)
	}
	if len(p.Interests) == 0 {
		return fmt.Errorf("%w: at least one interest is required", ErrValidation)
	}
	for _, interest := range p.Interests {
		if !helpers.IsKnownInterest(interest) {
			return fmt.Errorf("%w: unknown interest %q", ErrValidation, interest)
		}
	}
	return nil
}

func transitionMessages(target business.RouteStatus) (failPrefix, success string) {
	switch target {
	case business.RouteStatusActive:
		return constants.MsgActivateFailed, constants.MsgActivateSuccess
	case business.RouteStatusCompleted:
		return constants.MsgCompleteFailed, constants.MsgCompleteSuccess
	default:
		return constants.MsgUpdateFailed, constants.MsgUpdateSuccess
	}
}

type storedRoute business.Route

// decodeRoute parses a stored record. Missing status reads as pending and
// missing interests as an empty list. The timestamp may be any JSON number
// or a numeric string.
func decodeRoute(id string, raw []byte) (business.Route, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return business.Route{}, fmt.Errorf("stored record is not a JSON object")
	}
	var route business.Route
	record := struct {
		*storedRoute
		Timestamp json.RawMessage `json:"timestamp"`
	}{storedRoute: (*storedRoute)(&route)}
	if err := json.Unmarshal(raw, &record); err != nil {
		return business.Route{}, err
	}
	ts, err := parseTimestamp(record.Timestamp)
	if err != nil {
		return business.Route{}, err
	}
	route.Timestamp = ts
	route.ID = id
	if route.Status == "" {
		route.Status = business.RouteStatusPending
	}
	if route.Interests == nil {
		route.Interests = []string{}
	}
	return route, nil
}

// parseTimestamp reads seconds from 100, 100.0, 1e2 or "100". A missing or
// null timestamp is 0.
func parseTimestamp(raw json.RawMessage) (int64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, nil
	}
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(text)
	}

	n := json.Number(text)
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid timestamp %s", raw)
	}
	return int64(f), nil
}

func storedStatus(fields map[string]json.RawMessage) business.RouteStatus {
	var status business.RouteStatus
	if raw, ok := fields["status"]; ok {
		_ = json.Unmarshal(raw, &status)
	}
	if status == "" {
		return business.RouteStatusPending
	}
	return status
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
