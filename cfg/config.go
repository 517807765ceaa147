package cfg

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AmadeusConfig struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	RequestsPerSecond float64
}

type SearchConfig struct {
	CurrencyCode string
	MaxResults   int
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	AppEnv          string
	AppPort         string
	CacheDriver     string
	RedisConfig     RedisConfig
	CacheTTLMinutes int
	Amadeus         AmadeusConfig
	Search          SearchConfig
	SnowflakeNodeID int64
	Observability   ObservabilityConfig
}

// Load reads .env when present and then the process environment. Every
// missing or malformed key is reported in one joined error.
func Load() (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := envOr("APP_PORT", "8080")

	cacheDriver := envOr("CACHE_DRIVER", CacheDriverRedis)
	var redisCfg RedisConfig
	switch cacheDriver {
	case CacheDriverRedis:
		redisCfg = RedisConfig{
			Host:     mustEnv("REDIS_HOST", &errs),
			Port:     mustEnv("REDIS_PORT", &errs),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       intEnv("REDIS_DB", 0, &errs),
		}
	case CacheDriverMemory:
	default:
		errs = append(errs, errors.New("invalid env: CACHE_DRIVER must be redis or memory"))
	}

	cacheTTLMinutes := intEnv("CACHE_TTL_MINUTES", 15, &errs)

	amadeusCfg := AmadeusConfig{
		BaseURL:           mustEnv("AMADEUS_BASE_URL", &errs),
		ClientID:          mustEnv("AMADEUS_CLIENT_ID", &errs),
		ClientSecret:      mustEnv("AMADEUS_CLIENT_SECRET", &errs),
		RequestsPerSecond: floatEnv("AMADEUS_RATE_LIMIT_RPS", 10, &errs),
	}

	searchCfg := SearchConfig{
		CurrencyCode: envOr("SEARCH_CURRENCY", "EUR"),
		MaxResults:   intEnv("SEARCH_MAX_RESULTS", 50, &errs),
	}

	nodeID := intEnv("SNOWFLAKE_NODE_ID", 1, &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:          appEnv,
		AppPort:         appPort,
		CacheDriver:     cacheDriver,
		RedisConfig:     redisCfg,
		CacheTTLMinutes: cacheTTLMinutes,
		Amadeus:         amadeusCfg,
		Search:          searchCfg,
		SnowflakeNodeID: int64(nodeID),
		Observability: ObservabilityConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  envOr("OTEL_SERVICE_NAME", "flightsearch"),
			Environment:  appEnv,
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64, errs *[]error) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return f
}
