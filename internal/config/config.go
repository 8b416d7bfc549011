package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/salary"
)

const (
	SinkJSON       = "json"
	SinkClickHouse = "clickhouse"
)

type Config struct {
	InputPath      string
	OutputDir      string
	RatesPath      string
	VocabularyPath string
	Workers        int
	Sink           string

	HoursPerYear  int64
	DaysPerYear   int64
	WeeksPerYear  int64
	MonthsPerYear int64
	MaxAnnualUSD  float64

	NATSURL         string
	NATSConnTimeout time.Duration
	RawSubject      string
	EnrichedSubject string
	QueueGroup      string

	ClickHouseAddr         string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	OTelCollectorURL  string
	ProcessingTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	policy := salary.DefaultPolicy()

	config := &Config{
		InputPath:      getEnvString("INPUT_PATH", "data/bronze/jobs.csv"),
		OutputDir:      getEnvString("OUTPUT_DIR", "data/output"),
		RatesPath:      getEnvString("RATES_PATH", "data/exchange_rates.json"),
		VocabularyPath: getEnvString("VOCABULARY_PATH", ""),
		Workers:        getEnvInt("WORKERS", 4),
		Sink:           strings.ToLower(getEnvString("SINK", SinkJSON)),

		HoursPerYear:  int64(getEnvInt("HOURS_PER_YEAR", int(policy.HoursPerYear))),
		DaysPerYear:   int64(getEnvInt("DAYS_PER_YEAR", int(policy.DaysPerYear))),
		WeeksPerYear:  int64(getEnvInt("WEEKS_PER_YEAR", int(policy.WeeksPerYear))),
		MonthsPerYear: int64(getEnvInt("MONTHS_PER_YEAR", int(policy.MonthsPerYear))),
		MaxAnnualUSD:  getEnvFloat("MAX_ANNUAL_USD", policy.MaxAnnualUSD),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),
		RawSubject:      getEnvString("NATS_RAW_SUBJECT", "jobs.raw"),
		EnrichedSubject: getEnvString("NATS_ENRICHED_SUBJECT", "jobs.enriched"),
		QueueGroup:      getEnvString("NATS_QUEUE_GROUP", "enrichment-service"),

		ClickHouseAddr:         getEnvString("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "career_navigator"),

		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		OTelCollectorURL:  getEnvString("OTEL_COLLECTOR_URL", ""),
		ProcessingTimeout: getEnvDuration("PROCESSING_TIMEOUT", 5*time.Minute),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Workers < 1:
		return errors.InvalidInput(fmt.Sprintf("WORKERS must be at least 1, got %d", c.Workers), nil)
	case c.Sink != SinkJSON && c.Sink != SinkClickHouse:
		return errors.InvalidInput(fmt.Sprintf("SINK must be %q or %q, got %q", SinkJSON, SinkClickHouse, c.Sink), nil)
	case c.HoursPerYear <= 0 || c.DaysPerYear <= 0 || c.WeeksPerYear <= 0 || c.MonthsPerYear <= 0:
		return errors.InvalidInput("annualisation factors must be positive", nil)
	case c.MaxAnnualUSD < 0:
		return errors.InvalidInput("MAX_ANNUAL_USD must not be negative", nil)
	}
	return nil
}

// SalaryPolicy returns the annualisation policy the configuration describes.
func (c *Config) SalaryPolicy() salary.Policy {
	return salary.Policy{
		HoursPerYear:  c.HoursPerYear,
		DaysPerYear:   c.DaysPerYear,
		WeeksPerYear:  c.WeeksPerYear,
		MonthsPerYear: c.MonthsPerYear,
		MaxAnnualUSD:  c.MaxAnnualUSD,
	}
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
