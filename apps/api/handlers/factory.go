package handlers

import (
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/services"
	"go.uber.org/zap"
)

// HandlerFactory creates handlers with proper dependency injection
type HandlerFactory struct {
	routeService  interfaces.RouteService
	wallet        interfaces.WalletProvider
	notifier      interfaces.Notifier
	session       *services.SessionState
	ledgerBackend string

	logger *zap.Logger
}

// HandlerFactoryConfig contains all configuration for the handler factory
type HandlerFactoryConfig struct {
	RouteService  interfaces.RouteService
	Wallet        interfaces.WalletProvider
	Notifier      interfaces.Notifier
	Session       *services.SessionState
	LedgerBackend string

	Logger *zap.Logger
}

// NewHandlerFactory creates a new handler factory with all dependencies
func NewHandlerFactory(config HandlerFactoryConfig) *HandlerFactory {
	if config.Logger == nil {
		config.Logger = zap.L()
	}
	if config.Session == nil {
		config.Session = services.NewSessionState()
	}

	return &HandlerFactory{
		routeService:  config.RouteService,
		wallet:        config.Wallet,
		notifier:      config.Notifier,
		session:       config.Session,
		ledgerBackend: config.LedgerBackend,
		logger:        config.Logger,
	}
}

// Session returns the session state the handlers share
func (f *HandlerFactory) Session() *services.SessionState {
	return f.session
}

// NewRouteHandler creates a route handler
func (f *HandlerFactory) NewRouteHandler() *RouteHandler {
	return NewRouteHandler(f.routeService, f.session)
}

// NewWalletHandler creates a wallet handler
func (f *HandlerFactory) NewWalletHandler() *WalletHandler {
	return NewWalletHandler(f.wallet, f.routeService, f.session)
}

// NewNotificationHandler creates a notification handler
func (f *HandlerFactory) NewNotificationHandler() *NotificationHandler {
	return NewNotificationHandler(f.notifier)
}

// NewLedgerHandler creates a ledger handler
func (f *HandlerFactory) NewLedgerHandler() *LedgerHandler {
	return NewLedgerHandler(f.routeService, f.ledgerBackend)
}

// NewCatalogHandler creates a catalog handler
func (f *HandlerFactory) NewCatalogHandler() *CatalogHandler {
	return NewCatalogHandler()
}

// NewHealthHandler creates a health handler
func (f *HandlerFactory) NewHealthHandler() *HealthHandler {
	return NewHealthHandler()
}
