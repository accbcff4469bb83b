package constants

import "time"

// Common string constants used throughout the codebase
const (
	// Environments
	ProdEnvironment = "prod"

	// Service name stamped on structured logs
	ServiceName = "museum-hunt-api"
)

// Ledger key layout
const (
	RouteIndexKey  = "route_keys"
	RouteKeyPrefix = "route_"
)

// Ledger backends
const (
	LedgerBackendMemory   = "memory"
	LedgerBackendPostgres = "postgres"
	LedgerBackendContract = "contract"
)

// Route event types published after successful ledger writes
const (
	RouteCreatedEvent       = "route.created"
	RouteStatusChangedEvent = "route.status_changed"
)

// Default timings
const (
	DefaultProcessingDelay        = 3 * time.Second
	DefaultSuccessClearDelay      = 2 * time.Second
	DefaultNotificationClearDelay = 3 * time.Second
	DefaultReceiptTimeout         = 2 * time.Minute
)
