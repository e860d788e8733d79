package appconfig

import (
	"time"

	"eldenlens.dev/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: jaeger, otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"jaeger"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/0"`

	// CacheBackend selects where cached entities live: "redis" (shared by every instance)
	// or "memory" (per process, for local development).
	CacheBackend CacheBackend `split_words:"true" default:"redis"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// AnalysisFanoutLimit caps how many entities a single ranking request loads concurrently.
	AnalysisFanoutLimit int `split_words:"true" default:"8"`

	// AnalysisTimeout bounds a single ranking or comparison request.
	AnalysisTimeout time.Duration `split_words:"true" default:"10s"`

	// WorkerEnabled is a flag to indicate whether to run the cache warm worker.
	WorkerEnabled bool `split_words:"true" default:"true"`

	// WorkerInterval describes the interval in-between cache warm batches.
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"6h"`

	// WorkerSeparation describes the separation time in-between warm tasks of a batch.
	WorkerSeparation time.Duration `required:"true" split_words:"true" default:"1s"`

	// AdminKey is the key used to authenticate the admin API. Leaving it empty disables the admin API.
	AdminKey string `split_words:"true"`

	// ImportDataDir is the directory the import command reads weapons.csv, bossStats.csv and bosses.csv from.
	ImportDataDir string `split_words:"true" default:"./data"`

	// ImportLockExpiry is how long the import lock is held before it expires on its own.
	ImportLockExpiry time.Duration `split_words:"true" default:"10m"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
