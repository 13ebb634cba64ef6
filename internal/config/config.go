package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

const (
	OracleNone      = "none"
	OracleGemini    = "gemini"
	OracleOpenAI    = "openai"
	OracleAnthropic = "anthropic"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level
	SwaggerEnabled bool

	StoreDriver       string
	DBURL             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBAutoMigrate     bool
	CacheEnabled      bool
	CacheTTL          time.Duration

	AdminToken         string
	CORSAllowedOrigins []string
	AuditWorkers       int

	OracleProvider           string
	OracleModel              string
	OracleTimeout            time.Duration
	OracleMaxTokens          int
	OracleMaxRetries         int
	GeminiAPIKey             string
	GeminiBaseURL            string
	OpenAIAPIKey             string
	OpenAIBaseURL            string
	AnthropicAPIKey          string
	OracleCircuitEnabled     bool
	OracleCircuitFailures    int
	OracleCircuitOpenTimeout time.Duration
	OracleCircuitHalfOpenMax int

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	logLevel, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	// Oracle generation runs inside the request, so the write timeout
	// defaults above the oracle timeout.
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", "45s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_NAME", "cooking-schedule-api"),
		ServiceVersion:     getEnv("APP_VERSION", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           logLevel,
		SwaggerEnabled:     swaggerEnabled,
		AdminToken:         strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if appEnv == EnvProd && cfg.AdminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required when APP_ENV=%s", EnvProd)
	}

	if cfg.AuditWorkers, err = getEnvAsInt("AUDIT_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_WORKERS: %w", err)
	}
	if cfg.AuditWorkers < 1 {
		return Config{}, fmt.Errorf("AUDIT_WORKERS must be >= 1")
	}

	if err := loadStore(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadOracle(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStore(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", StoreMemory)))
	switch driver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", driver, StoreMemory, StorePostgres)
	}
	cfg.StoreDriver = driver
	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if driver == StorePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORE_DRIVER=%s", StorePostgres)
	}

	var err error
	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.DBMaxOpenConns < 1 || cfg.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1 and DB_MAX_IDLE_CONNS >= 0")
	}
	if cfg.DBConnMaxLifetime, err = getEnvAsDuration("DB_CONN_MAX_LIFETIME", "30m"); err != nil {
		return err
	}

	if cfg.DBAutoMigrate, err = strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "false")); err != nil {
		return fmt.Errorf("parse DB_AUTO_MIGRATE: %w", err)
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return err
	}
	return nil
}

func loadOracle(cfg *Config) error {
	provider := strings.ToLower(strings.TrimSpace(getEnv("ORACLE_PROVIDER", OracleNone)))
	switch provider {
	case OracleNone, OracleGemini, OracleOpenAI, OracleAnthropic:
	default:
		return fmt.Errorf("invalid ORACLE_PROVIDER %q: valid values are %s, %s, %s, %s",
			provider, OracleNone, OracleGemini, OracleOpenAI, OracleAnthropic)
	}
	cfg.OracleProvider = provider
	cfg.OracleModel = strings.TrimSpace(getEnv("ORACLE_MODEL", ""))
	cfg.GeminiAPIKey = strings.TrimSpace(getEnv("GEMINI_API_KEY", ""))
	cfg.GeminiBaseURL = strings.TrimSpace(getEnv("GEMINI_BASE_URL", ""))
	cfg.OpenAIAPIKey = strings.TrimSpace(getEnv("OPENAI_API_KEY", ""))
	cfg.OpenAIBaseURL = strings.TrimSpace(getEnv("OPENAI_BASE_URL", ""))
	cfg.AnthropicAPIKey = strings.TrimSpace(getEnv("ANTHROPIC_API_KEY", ""))

	keys := map[string]string{
		OracleGemini:    cfg.GeminiAPIKey,
		OracleOpenAI:    cfg.OpenAIAPIKey,
		OracleAnthropic: cfg.AnthropicAPIKey,
	}
	if key, ok := keys[provider]; ok && key == "" {
		return fmt.Errorf("%s_API_KEY is required when ORACLE_PROVIDER=%s", strings.ToUpper(provider), provider)
	}

	var err error
	if cfg.OracleTimeout, err = getEnvAsDuration("ORACLE_TIMEOUT", "30s"); err != nil {
		return err
	}
	if cfg.OracleMaxTokens, err = getEnvAsInt("ORACLE_MAX_TOKENS", 1000); err != nil {
		return fmt.Errorf("parse ORACLE_MAX_TOKENS: %w", err)
	}
	if cfg.OracleMaxTokens < 1 {
		return fmt.Errorf("ORACLE_MAX_TOKENS must be >= 1")
	}
	if cfg.OracleMaxRetries, err = getEnvAsInt("ORACLE_MAX_RETRIES", 1); err != nil {
		return fmt.Errorf("parse ORACLE_MAX_RETRIES: %w", err)
	}
	if cfg.OracleMaxRetries < 0 {
		return fmt.Errorf("ORACLE_MAX_RETRIES must be >= 0")
	}

	if cfg.OracleCircuitEnabled, err = strconv.ParseBool(getEnv("ORACLE_CB_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse ORACLE_CB_ENABLED: %w", err)
	}
	if cfg.OracleCircuitFailures, err = getEnvAsInt("ORACLE_CB_FAILURE_COUNT", 3); err != nil {
		return fmt.Errorf("parse ORACLE_CB_FAILURE_COUNT: %w", err)
	}
	if cfg.OracleCircuitFailures < 1 {
		return fmt.Errorf("ORACLE_CB_FAILURE_COUNT must be >= 1")
	}
	if cfg.OracleCircuitOpenTimeout, err = getEnvAsDuration("ORACLE_CB_OPEN_TIMEOUT", "30s"); err != nil {
		return err
	}
	if cfg.OracleCircuitHalfOpenMax, err = getEnvAsInt("ORACLE_CB_HALF_OPEN_MAX_REQ", 1); err != nil {
		return fmt.Errorf("parse ORACLE_CB_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.OracleCircuitHalfOpenMax < 1 {
		return fmt.Errorf("ORACLE_CB_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error
	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
