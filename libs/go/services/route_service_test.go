package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/ledger/memory"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/mocks"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/services"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/params"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

const account = "0x52908400098527886E0F7030069857D2E4169EE7"

func newNotifier() *services.NotificationService {
	// Negative delays keep toasts visible so tests can read them
	return services.NewNotificationService(-1, -1)
}

func newRouteService(ledger *memory.Store, notifier *services.NotificationService, strict bool) *services.RouteService {
	return services.NewRouteService(ledger, notifier, nil, services.RouteServiceConfig{StrictTransitions: strict})
}

func seed(t *testing.T, store *memory.Store, key, value string) {
	t.Helper()
	_, err := store.SetData(context.Background(), key, []byte(value))
	require.NoError(t, err)
}

func record(timestamp int64, status string, interests ...string) string {
	raw, _ := json.Marshal(map[string]interface{}{
		"data":      "FHE-e30=",
		"timestamp": timestamp,
		"owner":     account,
		"ageGroup":  business.AgeGroupAdults,
		"interests": interests,
		"status":    status,
	})
	return string(raw)
}

func routeIDs(routes []business.Route) []string {
	ids := make([]string, len(routes))
	for i, r := range routes {
		ids[i] = r.ID
	}
	return ids
}

func TestRouteService_LoadAll(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		wantIDs []string
	}{
		{
			name: "malformed record is skipped",
			entries: map[string]string{
				"route_keys": `["a","b"]`,
				"route_a":    record(100, "pending", "Science"),
				"route_b":    `{"data":`,
			},
			wantIDs: []string{"a"},
		},
		{
			name: "missing and non-object records are skipped",
			entries: map[string]string{
				"route_keys": `["a","missing","b","c","d"]`,
				"route_a":    record(100, "pending", "Modern Art"),
				"route_b":    record(300, "active", "Ancient History"),
				"route_c":    `null`,
				"route_d":    `{"timestamp":"yesterday"}`,
			},
			wantIDs: []string{"b", "a"},
		},
		{
			name: "newest first with stable ties",
			entries: map[string]string{
				"route_keys": `["x","y","z"]`,
				"route_x":    record(200, "pending", "Modern Art"),
				"route_y":    record(500, "pending", "Modern Art"),
				"route_z":    record(200, "completed", "Modern Art"),
			},
			wantIDs: []string{"y", "x", "z"},
		},
		{
			name: "non-integer numeric timestamps are kept",
			entries: map[string]string{
				"route_keys": `["p","q","r"]`,
				"route_p":    `{"data":"FHE-e30=","timestamp":100.0,"status":"pending"}`,
				"route_q":    `{"data":"FHE-e30=","timestamp":"400","status":"pending"}`,
				"route_r":    `{"data":"FHE-e30=","timestamp":2.5e2,"status":"pending"}`,
			},
			wantIDs: []string{"q", "r", "p"},
		},
		{
			name: "unparseable index is empty",
			entries: map[string]string{
				"route_keys": `{"not":"an array"}`,
				"route_a":    record(100, "pending", "Modern Art"),
			},
			wantIDs: []string{},
		},
		{
			name:    "absent index is empty",
			entries: map[string]string{},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New(nil)
			for k, v := range tt.entries {
				seed(t, store, k, v)
			}

			svc := newRouteService(store, newNotifier(), true)
			state := svc.LoadAll(context.Background(), business.AppState{})

			assert.Equal(t, tt.wantIDs, routeIDs(state.Routes))
			assert.False(t, svc.IsRefreshing())
		})
	}
}

func TestRouteService_LoadAllDefaults(t *testing.T) {
	store := memory.New(nil)
	seed(t, store, "route_keys", `["a"]`)
	seed(t, store, "route_a", `{"data":"FHE-e30=","timestamp":5,"owner":"0xabc","ageGroup":"Teens (13-19)"}`)

	state := newRouteService(store, newNotifier(), true).LoadAll(context.Background(), business.AppState{})
	require.Len(t, state.Routes, 1)
	assert.Equal(t, business.RouteStatusPending, state.Routes[0].Status)
	assert.Equal(t, []string{}, state.Routes[0].Interests)
	assert.Equal(t, business.EncryptedData("FHE-e30="), state.Routes[0].EncryptedData)
	assert.False(t, state.LoadedAt.IsZero())
}

func TestRouteService_LoadAllKeepsStoredInterests(t *testing.T) {
	store := memory.New(nil)
	seed(t, store, "route_keys", `["a"]`)
	seed(t, store, "route_a", record(1700000000, "pending", "Natural History", "Ancient History"))

	state := newRouteService(store, newNotifier(), false).LoadAll(context.Background(), business.AppState{})
	require.Len(t, state.Routes, 1)
	assert.Equal(t, []string{"Natural History", "Ancient History"}, state.Routes[0].Interests)
	assert.Equal(t, []string{"Ancient History", "Natural History"}, helpers.SortInterests(state.Routes[0].Interests))
}

func TestRouteService_CreateAcceptsCatalogTags(t *testing.T) {
	for _, tag := range business.InterestCatalog {
		t.Run(tag, func(t *testing.T) {
			store := memory.New(nil)
			svc := newRouteService(store, newNotifier(), false)

			state, err := svc.Create(context.Background(), business.AppState{Account: account}, params.CreateRouteParams{
				AgeGroup:  business.AgeGroupAdults,
				Interests: []string{tag},
			})
			require.NoError(t, err)
			require.Len(t, state.Routes, 1)
			assert.Equal(t, []string{tag}, state.Routes[0].Interests)
			assert.Contains(t, store.Keys(), "route_keys")
		})
	}

	t.Run("tags written by the dApp form", func(t *testing.T) {
		store := memory.New(nil)
		svc := newRouteService(store, newNotifier(), false)

		state, err := svc.Create(context.Background(), business.AppState{Account: account}, params.CreateRouteParams{
			AgeGroup:  business.AgeGroupTeens,
			Interests: []string{"Natural History", "Ancient History", "Modern Art"},
		})
		require.NoError(t, err)
		require.Len(t, state.Routes, 1)
		assert.Equal(t, []string{"Ancient History", "Modern Art", "Natural History"}, state.Routes[0].Interests)
	})
}

func TestRouteService_LoadAllUnavailableKeepsState(t *testing.T) {
	prior := business.AppState{
		Account: account,
		Routes:  []business.Route{{ID: "old", Status: business.RouteStatusActive}},
	}

	t.Run("ledger reports unavailable", func(t *testing.T) {
		store := memory.New(nil)
		seed(t, store, "route_keys", `["a"]`)
		seed(t, store, "route_a", record(1, "pending", "Modern Art"))
		store.SetAvailable(false)

		svc := newRouteService(store, newNotifier(), true)
		state := svc.LoadAll(context.Background(), prior)
		assert.Equal(t, prior, state)
		assert.False(t, svc.IsRefreshing())
	})

	t.Run("transport errors", func(t *testing.T) {
		ledger := mocks.NewMockLedgerClientForTest(t)
		ledger.EXPECT().Backend().Return("contract").AnyTimes()

		svc := services.NewRouteService(ledger, newNotifier(), nil, services.RouteServiceConfig{})

		ledger.EXPECT().IsAvailable(gomock.Any()).Return(false, errors.New("dial tcp: refused"))
		assert.Equal(t, prior, svc.LoadAll(context.Background(), prior))

		ledger.EXPECT().IsAvailable(gomock.Any()).Return(true, nil)
		ledger.EXPECT().GetData(gomock.Any(), "route_keys").Return(nil, errors.New("timeout"))
		assert.Equal(t, prior, svc.LoadAll(context.Background(), prior))
		assert.False(t, svc.IsRefreshing())
	})

	t.Run("record transport error skips record", func(t *testing.T) {
		ledger := mocks.NewMockLedgerClientForTest(t)
		svc := services.NewRouteService(ledger, newNotifier(), nil, services.RouteServiceConfig{})

		ledger.EXPECT().IsAvailable(gomock.Any()).Return(true, nil)
		ledger.EXPECT().GetData(gomock.Any(), "route_keys").Return([]byte(`["a","b"]`), nil)
		ledger.EXPECT().GetData(gomock.Any(), "route_a").Return(nil, errors.New("timeout"))
		ledger.EXPECT().GetData(gomock.Any(), "route_b").Return([]byte(record(9, "active", "Sculpture")), nil)

		state := svc.LoadAll(context.Background(), prior)
		assert.Equal(t, []string{"b"}, routeIDs(state.Routes))
		assert.Equal(t, account, state.Account)
	})
}

func TestRouteService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		state   business.AppState
		params  params.CreateRouteParams
		wantErr error
	}{
		{
			name:    "no wallet",
			params:  params.CreateRouteParams{AgeGroup: business.AgeGroupAdults, Interests: []string{"Modern Art"}},
			wantErr: services.ErrNoWallet,
		},
		{
			name:    "empty age group",
			state:   business.AppState{Account: account},
			params:  params.CreateRouteParams{Interests: []string{"Modern Art"}},
			wantErr: services.ErrValidation,
		},
		{
			name:    "unknown age group",
			state:   business.AppState{Account: account},
			params:  params.CreateRouteParams{AgeGroup: "Toddlers", Interests: []string{"Modern Art"}},
			wantErr: services.ErrValidation,
		},
		{
			name:    "empty interests",
			state:   business.AppState{Account: account},
			params:  params.CreateRouteParams{AgeGroup: business.AgeGroupAdults},
			wantErr: services.ErrValidation,
		},
		{
			name:    "unknown interest",
			state:   business.AppState{Account: account},
			params:  params.CreateRouteParams{AgeGroup: business.AgeGroupAdults, Interests: []string{"Cooking"}},
			wantErr: services.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: any ledger call fails the test
			ledger := mocks.NewMockLedgerClientForTest(t)
			svc := services.NewRouteService(ledger, newNotifier(), nil, services.RouteServiceConfig{})

			state, err := svc.Create(context.Background(), tt.state, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.state, state)
		})
	}
}

func TestRouteService_CreateNoWalletToast(t *testing.T) {
	notifier := newNotifier()
	svc := newRouteService(memory.New(nil), notifier, true)

	_, err := svc.Create(context.Background(), business.AppState{}, params.CreateRouteParams{})
	require.ErrorIs(t, err, services.ErrNoWallet)
	assert.Equal(t, constants.MsgNoWallet, notifier.Current().Message)
	assert.Equal(t, business.NotificationError, notifier.Current().Status)
}

func TestRouteService_Create(t *testing.T) {
	store := memory.New(nil)
	seed(t, store, "route_keys", `["existing"]`)
	seed(t, store, "route_existing", record(1, "completed", "Modern Art"))

	notifier := newNotifier()
	publisher := mocks.NewMockEventPublisherForTest(t)
	svc := services.NewRouteService(store, notifier, publisher, services.RouteServiceConfig{StrictTransitions: true})

	var published business.RouteEvent
	publisher.EXPECT().PublishRouteEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e business.RouteEvent) error {
			published = e
			return nil
		})

	lower := strings.ToLower(account)
	state, err := svc.Create(context.Background(), business.AppState{Account: lower}, params.CreateRouteParams{
		AgeGroup:  business.AgeGroupChildren,
		Interests: []string{"Science", "Modern Art", "Science"},
		Museum:    "Louvre",
	})
	require.NoError(t, err)
	require.Len(t, state.Routes, 2)

	created := state.Routes[0]
	assert.Equal(t, business.RouteStatusPending, created.Status)
	assert.Equal(t, lower, created.Owner)
	assert.True(t, helpers.IsRouteOwner(created, account))
	assert.Equal(t, []string{"Modern Art", "Science"}, created.Interests)
	assert.Regexp(t, `^\d{13}-[0-9a-f]{7}$`, created.ID)

	payload, err := helpers.DecryptRouteData(created.EncryptedData)
	require.NoError(t, err)
	assert.Equal(t, "Louvre", payload.Museum)
	assert.Equal(t, business.AgeGroupChildren, payload.AgeGroup)

	index, err := store.GetData(context.Background(), "route_keys")
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`["existing",%q]`, created.ID), string(index))

	assert.Equal(t, constants.RouteCreatedEvent, published.EventType)
	assert.Equal(t, created.ID, published.RouteID)
	assert.True(t, published.Receipt.Succeeded())

	assert.Equal(t, constants.MsgCreateSuccess, notifier.Current().Message)
	assert.Equal(t, business.NotificationSuccess, notifier.Current().Status)
}

func TestRouteService_CreateFailures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(ledger *mocks.MockLedgerClient)
		wantMessage string
	}{
		{
			name: "record write rejected by user",
			setup: func(ledger *mocks.MockLedgerClient) {
				ledger.EXPECT().SetData(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("setData: %w", helpers.ErrUserRejected))
			},
			wantMessage: constants.MsgUserRejected,
		},
		{
			name: "provider rejection phrase",
			setup: func(ledger *mocks.MockLedgerClient) {
				ledger.EXPECT().SetData(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("MetaMask Tx Signature: User denied transaction signature."))
			},
			wantMessage: constants.MsgUserRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mocks.NewMockLedgerClientForTest(t)
			tt.setup(ledger)

			notifier := newNotifier()
			svc := services.NewRouteService(ledger, notifier, nil, services.RouteServiceConfig{})

			_, err := svc.Create(context.Background(), business.AppState{Account: account}, params.CreateRouteParams{
				AgeGroup:  business.AgeGroupAdults,
				Interests: []string{"Modern Art"},
			})
			require.Error(t, err)
			assert.Equal(t, tt.wantMessage, notifier.Current().Message)
			assert.Equal(t, business.NotificationError, notifier.Current().Status)
		})
	}

	t.Run("index write fails", func(t *testing.T) {
		ledger := mocks.NewMockLedgerClientForTest(t)
		gomock.InOrder(
			ledger.EXPECT().SetData(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(&business.LedgerReceipt{Status: 1}, nil),
			ledger.EXPECT().GetData(gomock.Any(), "route_keys").Return(nil, nil),
			ledger.EXPECT().SetData(gomock.Any(), "route_keys", gomock.Any()).
				Return(nil, errors.New("out of gas")),
		)

		notifier := newNotifier()
		svc := services.NewRouteService(ledger, notifier, nil, services.RouteServiceConfig{})

		_, err := svc.Create(context.Background(), business.AppState{Account: account}, params.CreateRouteParams{
			AgeGroup:  business.AgeGroupAdults,
			Interests: []string{"Modern Art"},
		})
		require.Error(t, err)
		assert.Equal(t, "Submission failed: out of gas", notifier.Current().Message)
	})
}

func TestRouteService_CreatePublishFailureIsIgnored(t *testing.T) {
	publisher := mocks.NewMockEventPublisherForTest(t)
	publisher.EXPECT().PublishRouteEvent(gomock.Any(), gomock.Any()).Return(errors.New("queue down"))

	svc := services.NewRouteService(memory.New(nil), newNotifier(), publisher, services.RouteServiceConfig{})
	state, err := svc.Create(context.Background(), business.AppState{Account: account}, params.CreateRouteParams{
		AgeGroup:  business.AgeGroupSeniors,
		Interests: []string{"Ancient History"},
	})
	require.NoError(t, err)
	assert.Len(t, state.Routes, 1)
}

func TestRouteService_ConcurrentCreatesKeepEveryID(t *testing.T) {
	store := memory.New(nil)
	svc := newRouteService(store, newNotifier(), true)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), business.AppState{Account: account}, params.CreateRouteParams{
				AgeGroup:  business.AgeGroupTeens,
				Interests: []string{"Technology"},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	raw, err := store.GetData(context.Background(), "route_keys")
	require.NoError(t, err)
	var ids []string
	require.NoError(t, json.Unmarshal(raw, &ids))
	assert.Len(t, ids, n)

	state := svc.LoadAll(context.Background(), business.AppState{})
	assert.Len(t, state.Routes, n)
}

func TestRouteService_TransitionLifecycle(t *testing.T) {
	store := memory.New(nil)
	seed(t, store, "route_keys", `["a"]`)
	seed(t, store, "route_a", record(100, "pending", "Science"))

	notifier := newNotifier()
	svc := newRouteService(store, notifier, true)
	state := business.AppState{Account: account}

	state, err := svc.Transition(context.Background(), state, params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusActive})
	require.NoError(t, err)
	assert.Equal(t, constants.MsgActivateSuccess, notifier.Current().Message)

	between := svc.LoadAll(context.Background(), business.AppState{})
	require.Len(t, between.Routes, 1)
	assert.Equal(t, business.RouteStatusActive, between.Routes[0].Status)

	state, err = svc.Transition(context.Background(), state, params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusCompleted})
	require.NoError(t, err)
	require.Len(t, state.Routes, 1)
	assert.Equal(t, business.RouteStatusCompleted, state.Routes[0].Status)
	assert.Equal(t, constants.MsgCompleteSuccess, notifier.Current().Message)
}

func TestRouteService_TransitionRewritesOnlyStatus(t *testing.T) {
	store := memory.New(nil)
	seed(t, store, "route_a", `{"data":"FHE-x","timestamp":7,"owner":"0xAbC","ageGroup":"Adults (20+)","interests":["Modern Art"],"status":"pending","curator":"alice"}`)

	_, err := newRouteService(store, newNotifier(), true).Transition(context.Background(),
		business.AppState{Account: account},
		params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusActive})
	require.NoError(t, err)

	raw, err := store.GetData(context.Background(), "route_a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"FHE-x","timestamp":7,"owner":"0xAbC","ageGroup":"Adults (20+)","interests":["Modern Art"],"status":"active","curator":"alice"}`, string(raw))
}

func TestRouteService_TransitionStrictness(t *testing.T) {
	tests := []struct {
		name      string
		strict    bool
		current   string
		target    business.RouteStatus
		wantErr   error
		wantFinal string
	}{
		{name: "strict skip rejected", strict: true, current: "pending", target: business.RouteStatusCompleted, wantErr: services.ErrInvalidTransition, wantFinal: "pending"},
		{name: "strict reversal rejected", strict: true, current: "completed", target: business.RouteStatusActive, wantErr: services.ErrInvalidTransition, wantFinal: "completed"},
		{name: "strict unknown current rejected", strict: true, current: "archived", target: business.RouteStatusPending, wantErr: services.ErrInvalidTransition, wantFinal: "archived"},
		{name: "strict forward allowed", strict: true, current: "active", target: business.RouteStatusCompleted, wantFinal: "completed"},
		{name: "permissive skip written", strict: false, current: "pending", target: business.RouteStatusCompleted, wantFinal: "completed"},
		{name: "permissive reversal written", strict: false, current: "completed", target: business.RouteStatusPending, wantFinal: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New(nil)
			seed(t, store, "route_keys", `["a"]`)
			seed(t, store, "route_a", record(1, tt.current, "Modern Art"))

			_, err := newRouteService(store, newNotifier(), tt.strict).Transition(context.Background(),
				business.AppState{Account: account},
				params.TransitionRouteParams{RouteID: "a", Target: tt.target})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			raw, err := store.GetData(context.Background(), "route_a")
			require.NoError(t, err)
			var stored map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &stored))
			assert.Equal(t, tt.wantFinal, stored["status"])
		})
	}
}

func TestRouteService_TransitionSameStatusWritesNothing(t *testing.T) {
	ledger := mocks.NewMockLedgerClientForTest(t)
	ledger.EXPECT().Backend().Return("memory").AnyTimes()
	ledger.EXPECT().GetData(gomock.Any(), "route_a").Return([]byte(record(1, "active", "Modern Art")), nil)
	ledger.EXPECT().IsAvailable(gomock.Any()).Return(false, nil)

	notifier := newNotifier()
	svc := services.NewRouteService(ledger, notifier, nil, services.RouteServiceConfig{StrictTransitions: true})

	_, err := svc.Transition(context.Background(), business.AppState{Account: account},
		params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusActive})
	require.NoError(t, err)
	assert.Equal(t, constants.MsgActivateSuccess, notifier.Current().Message)
}

func TestRouteService_TransitionFailures(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		notifier := newNotifier()
		svc := newRouteService(memory.New(nil), notifier, true)

		_, err := svc.Transition(context.Background(), business.AppState{Account: account},
			params.TransitionRouteParams{RouteID: "ghost", Target: business.RouteStatusActive})
		assert.ErrorIs(t, err, services.ErrRouteNotFound)
		assert.Equal(t, "Activation failed: route not found: ghost", notifier.Current().Message)
	})

	t.Run("no wallet", func(t *testing.T) {
		svc := newRouteService(memory.New(nil), newNotifier(), true)
		_, err := svc.Transition(context.Background(), business.AppState{},
			params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusActive})
		assert.ErrorIs(t, err, services.ErrNoWallet)
	})

	t.Run("unknown target", func(t *testing.T) {
		svc := newRouteService(memory.New(nil), newNotifier(), true)
		_, err := svc.Transition(context.Background(), business.AppState{Account: account},
			params.TransitionRouteParams{RouteID: "a", Target: "archived"})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("malformed record", func(t *testing.T) {
		store := memory.New(nil)
		seed(t, store, "route_a", `["not","an","object"]`)
		notifier := newNotifier()

		_, err := newRouteService(store, notifier, true).Transition(context.Background(),
			business.AppState{Account: account},
			params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusCompleted})
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(notifier.Current().Message, constants.MsgCompleteFailed))
	})

	t.Run("rejected write", func(t *testing.T) {
		ledger := mocks.NewMockLedgerClientForTest(t)
		ledger.EXPECT().GetData(gomock.Any(), "route_a").Return([]byte(record(1, "pending", "Modern Art")), nil)
		ledger.EXPECT().SetData(gomock.Any(), "route_a", gomock.Any()).Return(nil, helpers.ErrUserRejected)

		notifier := newNotifier()
		svc := services.NewRouteService(ledger, notifier, nil, services.RouteServiceConfig{StrictTransitions: true})

		_, err := svc.Transition(context.Background(), business.AppState{Account: account},
			params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusActive})
		assert.ErrorIs(t, err, helpers.ErrUserRejected)
		assert.Equal(t, constants.MsgUserRejected, notifier.Current().Message)
	})

	t.Run("cancelled during processing delay", func(t *testing.T) {
		// No expectations: the ledger must not be touched
		ledger := mocks.NewMockLedgerClientForTest(t)
		svc := services.NewRouteService(ledger, newNotifier(), nil, services.RouteServiceConfig{ProcessingDelay: time.Hour})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := svc.Transition(ctx, business.AppState{Account: account},
			params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusActive})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRouteService_TransitionPublishesEvent(t *testing.T) {
	store := memory.New(nil)
	seed(t, store, "route_keys", `["a"]`)
	seed(t, store, "route_a", record(1, "pending", "Modern Art"))

	publisher := mocks.NewMockEventPublisherForTest(t)
	publisher.EXPECT().PublishRouteEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e business.RouteEvent) error {
			assert.Equal(t, constants.RouteStatusChangedEvent, e.EventType)
			assert.Equal(t, business.RouteStatusPending, e.PrevStatus)
			assert.Equal(t, business.RouteStatusActive, e.Status)
			assert.Equal(t, account, e.Owner)
			return nil
		})

	svc := services.NewRouteService(store, newNotifier(), publisher, services.RouteServiceConfig{StrictTransitions: true})
	_, err := svc.Transition(context.Background(), business.AppState{Account: account},
		params.TransitionRouteParams{RouteID: "a", Target: business.RouteStatusActive})
	require.NoError(t, err)
}

func TestRouteService_CheckAvailability(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		notifier := newNotifier()
		ok, err := newRouteService(memory.New(nil), notifier, true).CheckAvailability(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, constants.MsgLedgerAvailable, notifier.Current().Message)
	})

	t.Run("unavailable", func(t *testing.T) {
		store := memory.New(nil)
		store.SetAvailable(false)
		notifier := newNotifier()

		ok, err := newRouteService(store, notifier, true).CheckAvailability(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, constants.MsgLedgerUnavailable, notifier.Current().Message)
		assert.Equal(t, business.NotificationError, notifier.Current().Status)
	})

	t.Run("error", func(t *testing.T) {
		ledger := mocks.NewMockLedgerClientForTest(t)
		ledger.EXPECT().IsAvailable(gomock.Any()).Return(false, errors.New("dial tcp"))
		notifier := newNotifier()

		_, err := services.NewRouteService(ledger, notifier, nil, services.RouteServiceConfig{}).CheckAvailability(context.Background())
		assert.ErrorIs(t, err, services.ErrLedgerUnavailable)
		assert.Equal(t, constants.MsgAvailabilityFailed, notifier.Current().Message)
	})
}
