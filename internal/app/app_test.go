package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/cooking-schedule/internal/config"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StoreDriver:        config.StoreMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		AdminToken:         "admin-secret",
		CORSAllowedOrigins: []string{"*"},
		AuditWorkers:       2,
		OracleProvider:     config.OracleNone,
		OracleTimeout:      time.Second,
	}
}

func TestNew_MemoryStoreServesRequests(t *testing.T) {
	application, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = application.Close() })

	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/queries/_getPeriods", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNew_RejectsUnknownOracleProvider(t *testing.T) {
	cfg := memoryConfig()
	cfg.OracleProvider = "bard"

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unknown oracle provider")
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
