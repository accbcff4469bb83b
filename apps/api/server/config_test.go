package server

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var configEnvKeys = []string{
	"STAGE", "PORT", "LOG_LEVEL", "LEDGER_BACKEND", "LEDGER_RPC_URL", "LEDGER_CONTRACT_ADDRESS",
	"LEDGER_CHAIN_ID", "LEDGER_RECEIPT_TIMEOUT", "WALLET_AUTO_APPROVE",
	"ROUTE_PROCESSING_DELAY", "NOTIFICATION_SUCCESS_CLEAR_DELAY", "NOTIFICATION_CLEAR_DELAY",
	"ROUTE_REFRESH_INTERVAL", "ROUTE_STRICT_TRANSITIONS", "ROUTE_EVENTS_QUEUE_URL",
	"RATE_LIMIT", "WRITE_RATE_LIMIT",
}

func clearConfigEnv(t *testing.T) {
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Stage)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.LedgerBackend)
	assert.Nil(t, cfg.ChainID)
	assert.Equal(t, 3*time.Second, cfg.ProcessingDelay)
	assert.Equal(t, 2*time.Second, cfg.SuccessClearDelay)
	assert.Equal(t, 3*time.Second, cfg.ErrorClearDelay)
	assert.Equal(t, 2*time.Minute, cfg.ReceiptTimeout)
	assert.Zero(t, cfg.RefreshInterval)
	assert.True(t, cfg.WalletAutoApprove)
	assert.False(t, cfg.StrictTransitions)
	assert.Equal(t, RateLimit{RequestsPerSecond: 100, Burst: 200}, cfg.DefaultRateLimit)
	assert.Equal(t, RateLimit{RequestsPerSecond: 10, Burst: 20}, cfg.WriteRateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STAGE", "dev")
	t.Setenv("LOG_LEVEL", "Warning")
	t.Setenv("LEDGER_BACKEND", "Contract")
	t.Setenv("LEDGER_RPC_URL", "http://localhost:8545")
	t.Setenv("LEDGER_CONTRACT_ADDRESS", "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23")
	t.Setenv("LEDGER_CHAIN_ID", "8009")
	t.Setenv("WALLET_AUTO_APPROVE", "false")
	t.Setenv("ROUTE_PROCESSING_DELAY", "0s")
	t.Setenv("ROUTE_REFRESH_INTERVAL", "30s")
	t.Setenv("ROUTE_STRICT_TRANSITIONS", "1")
	t.Setenv("WRITE_RATE_LIMIT", "2:4")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "Warning", cfg.LogLevel)
	assert.Equal(t, "contract", cfg.LedgerBackend)
	assert.Equal(t, 0, cfg.ChainID.Cmp(big.NewInt(8009)))
	assert.False(t, cfg.WalletAutoApprove)
	assert.Zero(t, cfg.ProcessingDelay)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, RateLimit{RequestsPerSecond: 2, Burst: 4}, cfg.WriteRateLimit)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad stage", env: map[string]string{"STAGE": "staging"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "unknown backend", env: map[string]string{"LEDGER_BACKEND": "redis"}},
		{name: "contract without rpc", env: map[string]string{"LEDGER_BACKEND": "contract", "LEDGER_CONTRACT_ADDRESS": "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"}},
		{name: "contract with bad address", env: map[string]string{"LEDGER_BACKEND": "contract", "LEDGER_RPC_URL": "http://rpc", "LEDGER_CONTRACT_ADDRESS": "0x123"}},
		{name: "bad chain id", env: map[string]string{"LEDGER_CHAIN_ID": "-1"}},
		{name: "bad duration", env: map[string]string{"ROUTE_PROCESSING_DELAY": "soon"}},
		{name: "bad bool", env: map[string]string{"ROUTE_STRICT_TRANSITIONS": "maybe"}},
		{name: "bad rate limit", env: map[string]string{"RATE_LIMIT": "100"}},
		{name: "zero burst", env: map[string]string{"RATE_LIMIT": "100:0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
}

func TestConfigureCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://hunt.example, http://localhost:3000")
	t.Setenv("CORS_ALLOWED_METHODS", "")
	t.Setenv("CORS_ALLOWED_HEADERS", "")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	r := gin.New()
	r.Use(configureCORS())
	r.GET("/api/v1/routes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes", nil)
	req.Header.Set("Origin", "https://hunt.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://hunt.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/routes", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
