package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/0rsallylim46/MuseumHuntFHE/apps/api/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/apps/api/handlers"
	awsclient "github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/aws"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/ledger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/client/wallet"
	libconstants "github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/middleware"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	routeHandler        *handlers.RouteHandler
	walletHandler       *handlers.WalletHandler
	notificationHandler *handlers.NotificationHandler
	ledgerHandler       *handlers.LedgerHandler
	catalogHandler      *handlers.CatalogHandler
	healthHandler       *handlers.HealthHandler

	// Background work and resources released by Shutdown
	refreshScheduler   *services.RefreshScheduler
	walletProvider     *wallet.Provider
	walletSubscription *wallet.Subscription
	closeLedger        ledger.Closer
	defaultRateLimiter *middleware.RateLimiter
	writeRateLimiter   *middleware.RateLimiter
	appConfig          Config
)

func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	appConfig, err = LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Initialize Logger (AFTER stage validation) ---
	err = logger.Init(logger.Options{
		Stage:  appConfig.Stage,
		Level:  appConfig.LogLevel,
		Fields: []zap.Field{zap.String("ledger_backend", appConfig.LedgerBackend)},
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Initializing handlers for stage",
		zap.String("stage", appConfig.Stage),
		zap.String("ledger_backend", appConfig.LedgerBackend),
	)

	ctx := context.Background()

	// --- Initialize AWS Secrets Manager Client ---
	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Warn("AWS Secrets Manager unavailable, secrets come from env vars only", zap.Error(err))
		secretsClient = awsclient.NewSecretsManagerClientWithAPI(nil)
	}

	// --- Wallet ---
	walletKeys, err := secretsClient.GetSecretList(ctx, "WALLET_PRIVATE_KEYS_ARN", "WALLET_PRIVATE_KEYS")
	if err != nil {
		logger.Warn("No wallet keys configured, wallet connect will fail", zap.Error(err))
	}
	approve := wallet.AutoApprove
	if !appConfig.WalletAutoApprove {
		approve = wallet.DenyAll
	}
	provider, err := wallet.NewProvider(walletKeys, approve)
	if err != nil {
		logger.Fatal("Failed to initialize wallet provider", zap.Error(err))
	}

	// --- Ledger ---
	ledgerCfg := ledger.Config{
		Backend:         appConfig.LedgerBackend,
		RPCURL:          appConfig.RPCURL,
		ContractAddress: appConfig.ContractAddress,
		ChainID:         appConfig.ChainID,
		ReceiptTimeout:  appConfig.ReceiptTimeout,
	}
	if appConfig.LedgerBackend == libconstants.LedgerBackendPostgres {
		ledgerCfg.DatabaseURL, err = secretsClient.GetSecretString(ctx, "DATABASE_URL_ARN", "DATABASE_URL")
		if err != nil {
			logger.Fatal("Failed to get DATABASE_URL", zap.Error(err))
		}
	}
	ledgerClient, closer, err := ledger.New(ctx, ledgerCfg, provider)
	if err != nil {
		logger.Fatal("Failed to initialize ledger", zap.Error(err), zap.String("backend", appConfig.LedgerBackend))
	}
	closeLedger = closer

	// --- Route events ---
	var publisher interfaces.EventPublisher = awsclient.NopPublisher{}
	if appConfig.RouteEventsQueueURL != "" {
		sqsPublisher, err := awsclient.NewSQSPublisher(ctx, appConfig.RouteEventsQueueURL)
		if err != nil {
			logger.Fatal("Failed to initialize SQS publisher", zap.Error(err))
		}
		publisher = sqsPublisher
	}

	// --- Services ---
	notifier := services.NewNotificationService(appConfig.SuccessClearDelay, appConfig.ErrorClearDelay)
	routeService := services.NewRouteService(ledgerClient, notifier, publisher, services.RouteServiceConfig{
		ProcessingDelay:   appConfig.ProcessingDelay,
		StrictTransitions: appConfig.StrictTransitions,
	})
	session := services.NewSessionState()
	walletProvider = provider
	walletSubscription = provider.Subscribe(session.OnAccountsChanged)

	refreshScheduler = services.NewRefreshScheduler(routeService, session, appConfig.RefreshInterval)
	refreshScheduler.Start()

	handlerFactory := handlers.NewHandlerFactory(handlers.HandlerFactoryConfig{
		RouteService:  routeService,
		Wallet:        provider,
		Notifier:      notifier,
		Session:       session,
		LedgerBackend: ledgerClient.Backend(),
		Logger:        logger.Log,
	})

	routeHandler = handlerFactory.NewRouteHandler()
	walletHandler = handlerFactory.NewWalletHandler()
	notificationHandler = handlerFactory.NewNotificationHandler()
	ledgerHandler = handlerFactory.NewLedgerHandler()
	catalogHandler = handlerFactory.NewCatalogHandler()
	healthHandler = handlerFactory.NewHealthHandler()

	defaultRateLimiter = middleware.NewRateLimiter(appConfig.DefaultRateLimit.RequestsPerSecond, appConfig.DefaultRateLimit.Burst)
	writeRateLimiter = middleware.NewRateLimiter(appConfig.WriteRateLimit.RequestsPerSecond, appConfig.WriteRateLimit.Burst)
}

func InitializeRoutes(router *gin.Engine) {
	// Configure CORS
	router.Use(configureCORS())

	// Add correlation ID middleware first (before logging)
	router.Use(middleware.CorrelationIDMiddleware())

	// Default rate limit for every endpoint
	router.Use(defaultRateLimiter.Middleware())

	isDevelopment := os.Getenv("GIN_MODE") != gin.ReleaseMode
	router.Use(middleware.RequestLoggingMiddleware(isDevelopment))

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", healthHandler.Health)

	// Health for raw lambda url check
	router.GET("/:stage/health", healthHandler.Health)

	write := writeRateLimiter.Middleware()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", catalogHandler.GetCatalog)

		walletGroup := v1.Group("/wallet")
		{
			walletGroup.GET("", walletHandler.GetWallet)
			walletGroup.POST("/connect", write, walletHandler.ConnectWallet)
			walletGroup.PUT("/account", write, walletHandler.SelectAccount)
		}

		routes := v1.Group("/routes")
		{
			routes.GET("", routeHandler.ListRoutes)
			routes.GET("/stats", routeHandler.GetRouteStats)
			routes.POST("/refresh", routeHandler.RefreshRoutes)
			routes.POST("", write, routeHandler.CreateRoute)
			routes.POST("/:route_id/activate", write, routeHandler.ActivateRoute)
			routes.POST("/:route_id/complete", write, routeHandler.CompleteRoute)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotification)
			notifications.DELETE("", notificationHandler.DismissNotification)
		}

		v1.POST("/ledger/availability", write, ledgerHandler.CheckAvailability)
	}
}

// Shutdown stops background work and releases the ledger
func Shutdown() {
	logger.Info("Server is shutting down...")
	if refreshScheduler != nil {
		refreshScheduler.Stop()
	}
	if walletProvider != nil {
		walletProvider.Disconnect()
	}
	walletSubscription.Unsubscribe()
	if defaultRateLimiter != nil {
		defaultRateLimiter.Stop()
	}
	if writeRateLimiter != nil {
		writeRateLimiter.Stop()
	}
	if closeLedger != nil {
		closeLedger()
	}
	_ = logger.Sync()
}

// ListenAddr is the address the local server binds
func ListenAddr() string {
	return ":" + appConfig.Port
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	if origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	if methods := splitList(os.Getenv("CORS_ALLOWED_METHODS")); len(methods) > 0 {
		corsConfig.AllowMethods = methods
	}

	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.CorrelationIDHeader, middleware.WalletAddressHeader}
	if headers := splitList(os.Getenv("CORS_ALLOWED_HEADERS")); len(headers) > 0 {
		corsConfig.AllowHeaders = headers
	}

	corsConfig.ExposeHeaders = []string{
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
		middleware.CorrelationIDHeader,
	}

	corsConfig.AllowCredentials = strings.EqualFold(os.Getenv("CORS_ALLOW_CREDENTIALS"), constants.TrueString)

	return cors.New(corsConfig)
}
