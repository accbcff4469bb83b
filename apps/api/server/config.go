package server

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	libconstants "github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
)

// Config is the process configuration read from the environment.
// Secrets (wallet keys, database URL) are resolved separately.
type Config struct {
	Stage    string
	Port     string
	LogLevel string

	LedgerBackend   string
	RPCURL          string
	ContractAddress string
	ChainID         *big.Int
	ReceiptTimeout  time.Duration

	WalletAutoApprove bool

	ProcessingDelay     time.Duration
	SuccessClearDelay   time.Duration
	ErrorClearDelay     time.Duration
	RefreshInterval     time.Duration
	StrictTransitions   bool
	RouteEventsQueueURL string

	DefaultRateLimit RateLimit
	WriteRateLimit   RateLimit
}

// RateLimit is a requests-per-second budget with a burst
type RateLimit struct {
	RequestsPerSecond int
	Burst             int
}

// LoadConfig reads Config from the environment, applying defaults
func LoadConfig() (Config, error) {
	cfg := Config{
		Stage:               getEnv("STAGE", helpers.StageLocal),
		Port:                getEnv("PORT", "8000"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LedgerBackend:       strings.ToLower(getEnv("LEDGER_BACKEND", libconstants.LedgerBackendMemory)),
		RPCURL:              os.Getenv("LEDGER_RPC_URL"),
		ContractAddress:     os.Getenv("LEDGER_CONTRACT_ADDRESS"),
		RouteEventsQueueURL: os.Getenv("ROUTE_EVENTS_QUEUE_URL"),
	}
	if !helpers.IsValidStage(cfg.Stage) {
		return Config{}, fmt.Errorf("invalid STAGE %q: must be one of %s, %s, %s",
			cfg.Stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.LedgerBackend {
	case libconstants.LedgerBackendMemory, libconstants.LedgerBackendPostgres:
	case libconstants.LedgerBackendContract:
		if cfg.RPCURL == "" {
			return Config{}, fmt.Errorf("LEDGER_RPC_URL is required for the contract ledger")
		}
		if !helpers.IsAddressValid(cfg.ContractAddress) {
			return Config{}, fmt.Errorf("LEDGER_CONTRACT_ADDRESS %q is not a valid address", cfg.ContractAddress)
		}
	default:
		return Config{}, fmt.Errorf("unknown LEDGER_BACKEND %q", cfg.LedgerBackend)
	}

	if raw := os.Getenv("LEDGER_CHAIN_ID"); raw != "" {
		chainID, ok := new(big.Int).SetString(raw, 10)
		if !ok || chainID.Sign() <= 0 {
			return Config{}, fmt.Errorf("invalid LEDGER_CHAIN_ID %q", raw)
		}
		cfg.ChainID = chainID
	}

	var err error
	durations := []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"LEDGER_RECEIPT_TIMEOUT", libconstants.DefaultReceiptTimeout, &cfg.ReceiptTimeout},
		{"ROUTE_PROCESSING_DELAY", libconstants.DefaultProcessingDelay, &cfg.ProcessingDelay},
		{"NOTIFICATION_SUCCESS_CLEAR_DELAY", libconstants.DefaultSuccessClearDelay, &cfg.SuccessClearDelay},
		{"NOTIFICATION_CLEAR_DELAY", libconstants.DefaultNotificationClearDelay, &cfg.ErrorClearDelay},
		{"ROUTE_REFRESH_INTERVAL", 0, &cfg.RefreshInterval},
	}
	for _, d := range durations {
		if *d.dst, err = getDuration(d.key, d.def); err != nil {
			return Config{}, err
		}
	}

	if cfg.WalletAutoApprove, err = getBool("WALLET_AUTO_APPROVE", true); err != nil {
		return Config{}, err
	}
	if cfg.StrictTransitions, err = getBool("ROUTE_STRICT_TRANSITIONS", false); err != nil {
		return Config{}, err
	}

	if cfg.DefaultRateLimit, err = getRateLimit("RATE_LIMIT", RateLimit{RequestsPerSecond: 100, Burst: 200}); err != nil {
		return Config{}, err
	}
	if cfg.WriteRateLimit, err = getRateLimit("WRITE_RATE_LIMIT", RateLimit{RequestsPerSecond: 10, Burst: 20}); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func getBool(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return b, nil
}

// getRateLimit reads "<rps>:<burst>" from key
func getRateLimit(key string, def RateLimit) (RateLimit, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	rpsRaw, burstRaw, ok := strings.Cut(raw, ":")
	rps, err1 := strconv.Atoi(strings.TrimSpace(rpsRaw))
	burst, err2 := strconv.Atoi(strings.TrimSpace(burstRaw))
	if !ok || err1 != nil || err2 != nil || rps <= 0 || burst <= 0 {
		return RateLimit{}, fmt.Errorf("invalid %s %q: want <requests per second>:<burst>", key, raw)
	}
	return RateLimit{RequestsPerSecond: rps, Burst: burst}, nil
}

// splitList splits a comma separated env value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
