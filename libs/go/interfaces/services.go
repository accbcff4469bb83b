package interfaces

import (
	"context"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/params"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
)

// Notifier shows transient toasts
type Notifier interface {
	Notify(status business.NotificationStatus, message string)
	Current() business.Notification
	Clear()
}

// RouteService mediates between the ledger and the in-memory snapshot.
// AppState is passed in and the updated value is returned; callers own storage.
type RouteService interface {
	LoadAll(ctx context.Context, state business.AppState) business.AppState
	Create(ctx context.Context, state business.AppState, p params.CreateRouteParams) (business.AppState, error)
	Transition(ctx context.Context, state business.AppState, p params.TransitionRouteParams) (business.AppState, error)
	CheckAvailability(ctx context.Context) (bool, error)
	IsRefreshing() bool
}
