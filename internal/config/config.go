package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rhalemsc/ncaam-summarizer/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	LogLevel                    logging.Level
	CORSAllowedOrigins          []string
	CacheEnabled                bool
	ESPNBaseURL                 string
	ESPNTimeout                 time.Duration
	ESPNMaxRetries              int
	ESPNCircuitEnabled          bool
	ESPNCircuitFailureCount     int
	ESPNCircuitOpenTimeout      time.Duration
	ESPNCircuitHalfOpenMaxReq   int
	CohereBaseURL               string
	CohereAPIKey                string
	CohereModel                 string
	CohereTimeout               time.Duration
	CohereCircuitEnabled        bool
	CohereCircuitFailureCount   int
	CohereCircuitOpenTimeout    time.Duration
	CohereCircuitHalfOpenMaxReq int
	InternalJobToken            string
	PrewarmMaxWorkers           int
	UptraceEnabled              bool
	UptraceDSN                  string
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	PprofEnabled                bool
	PprofAddr                   string
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "120s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}

	espnTimeout, err := time.ParseDuration(getEnv("ESPN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_TIMEOUT: %w", err)
	}
	if espnTimeout <= 0 {
		return Config{}, fmt.Errorf("ESPN_TIMEOUT must be > 0")
	}
	espnMaxRetries, err := getEnvAsInt("ESPN_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_MAX_RETRIES: %w", err)
	}
	if espnMaxRetries < 0 {
		return Config{}, fmt.Errorf("ESPN_MAX_RETRIES must be >= 0")
	}
	espnCircuitEnabled, err := strconv.ParseBool(getEnv("ESPN_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_ENABLED: %w", err)
	}
	espnCircuitFailureCount, err := getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if espnCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	espnCircuitOpenTimeout, err := time.ParseDuration(getEnv("ESPN_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if espnCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	espnCircuitHalfOpenMaxReq, err := getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if espnCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cohereTimeout, err := time.ParseDuration(getEnv("COHERE_TIMEOUT", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COHERE_TIMEOUT: %w", err)
	}
	if cohereTimeout <= 0 {
		return Config{}, fmt.Errorf("COHERE_TIMEOUT must be > 0")
	}
	cohereCircuitEnabled, err := strconv.ParseBool(getEnv("COHERE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COHERE_CIRCUIT_ENABLED: %w", err)
	}
	cohereCircuitFailureCount, err := getEnvAsInt("COHERE_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse COHERE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cohereCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("COHERE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cohereCircuitOpenTimeout, err := time.ParseDuration(getEnv("COHERE_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COHERE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cohereCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("COHERE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	cohereCircuitHalfOpenMaxReq, err := getEnvAsInt("COHERE_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse COHERE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cohereCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("COHERE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cohereAPIKey := strings.TrimSpace(getEnv("COHERE_API_KEY", ""))
	if cohereAPIKey == "" {
		return Config{}, fmt.Errorf("COHERE_API_KEY is required")
	}

	prewarmMaxWorkers, err := getEnvAsInt("PREWARM_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse PREWARM_MAX_WORKERS: %w", err)
	}
	if prewarmMaxWorkers < 1 {
		return Config{}, fmt.Errorf("PREWARM_MAX_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "ncaam-summarizer"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                 readTimeout,
		WriteTimeout:                writeTimeout,
		LogLevel:                    parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CacheEnabled:                cacheEnabled,
		ESPNBaseURL:                 strings.TrimSpace(getEnv("ESPN_BASE_URL", "http://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball")),
		ESPNTimeout:                 espnTimeout,
		ESPNMaxRetries:              espnMaxRetries,
		ESPNCircuitEnabled:          espnCircuitEnabled,
		ESPNCircuitFailureCount:     espnCircuitFailureCount,
		ESPNCircuitOpenTimeout:      espnCircuitOpenTimeout,
		ESPNCircuitHalfOpenMaxReq:   espnCircuitHalfOpenMaxReq,
		CohereBaseURL:               strings.TrimSpace(getEnv("COHERE_BASE_URL", "https://api.cohere.com")),
		CohereAPIKey:                cohereAPIKey,
		CohereModel:                 strings.TrimSpace(getEnv("COHERE_MODEL", "command-a-03-2025")),
		CohereTimeout:               cohereTimeout,
		CohereCircuitEnabled:        cohereCircuitEnabled,
		CohereCircuitFailureCount:   cohereCircuitFailureCount,
		CohereCircuitOpenTimeout:    cohereCircuitOpenTimeout,
		CohereCircuitHalfOpenMaxReq: cohereCircuitHalfOpenMaxReq,
		InternalJobToken:            strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		PrewarmMaxWorkers:           prewarmMaxWorkers,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case EnvDev, EnvStage, EnvProd:
		return v, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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
