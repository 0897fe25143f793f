package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/rollup/internal/domain/models"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	STORE_DRIVER=mongo
//	MONGO_URI=mongodb://localhost:27017
//	MONGO_DB=yfinance_data
//	INPUT_PATH=/app/output/tickers_data.json
//	BATCH_SIZE=1000
//	CAP_DAILY=70
//	COLLECTION_DAILY=data_harian
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Loader   LoaderConfig
	Export   ExportConfig
	Schedule ScheduleConfig
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// StoreConfig selects the summary store backend: mongo, postgres or sqlite.
type StoreConfig struct {
	Driver string
}

// MongoConfig defines connection details for the document store.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration // server selection / connect timeout
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// SQLiteConfig points at a local database file.
type SQLiteConfig struct {
	Path string
}

// LoaderConfig drives one multi-target load.
//
// Fields:
//   - InputPath: JSON artifact produced by the fetch step.
//   - BatchSize: documents per bulk insert, same for every target.
//   - SourceLimit: keep only the first N records of the artifact (0 = all).
//   - Targets: collections to build, in load order.
type LoaderConfig struct {
	InputPath   string
	BatchSize   int
	SourceLimit int
	Targets     []models.Target
}

// ExportConfig enables the optional file export of every target.
type ExportConfig struct {
	Dir    string // empty disables export
	Format string // parquet | json
}

// ScheduleConfig holds the cron expression used in schedule mode.
type ScheduleConfig struct {
	Spec string
}

// DefaultTargets are the seven legacy collections with their ticker caps.
//
// Caps bound the document count of high-cardinality collections; they are a
// storage budget, not a business rule.
var DefaultTargets = []models.Target{
	{Collection: "data_harian", Granularity: models.Daily, TickerCap: 70},
	{Collection: "data_mingguan", Granularity: models.Weekly, TickerCap: 280},
	{Collection: "data_bulanan", Granularity: models.Monthly, TickerCap: 950},
	{Collection: "data_tahunan", Granularity: models.Yearly, TickerCap: 950},
	{Collection: "data_lima_tahun", Granularity: models.FiveYears, TickerCap: 950},
	{Collection: "data_satu_tahun", Granularity: models.OneYear, TickerCap: 950},
	{Collection: "data_tiga_tahun", Granularity: models.ThreeYears, TickerCap: 950},
}

// Load reads configuration from defaults, an optional .env file and the
// environment, in increasing order of precedence.
//
// Behavior:
//   - Sets defaults for all fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Resolves the per-target collection names and caps.
//   - Calls validate() and returns its error, if any.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore error if no .env

	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DB"),
			Timeout:  v.GetDuration("MONGO_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Loader: LoaderConfig{
			InputPath:   v.GetString("INPUT_PATH"),
			BatchSize:   v.GetInt("BATCH_SIZE"),
			SourceLimit: v.GetInt("SOURCE_LIMIT"),
			Targets:     targetsFrom(v),
		},
		Export: ExportConfig{
			Dir:    v.GetString("EXPORT_DIR"),
			Format: strings.ToLower(v.GetString("EXPORT_FORMAT")),
		},
		Schedule: ScheduleConfig{
			Spec: v.GetString("SCHEDULE_SPEC"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	cfg.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("STORE_DRIVER", "mongo")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "yfinance_data")
	v.SetDefault("MONGO_TIMEOUT", "5s")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "rollup")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("SQLITE_PATH", "./data/rollup.db")

	v.SetDefault("INPUT_PATH", "/app/output/tickers_data.json")
	v.SetDefault("BATCH_SIZE", 1000)
	v.SetDefault("SOURCE_LIMIT", 0)

	v.SetDefault("EXPORT_DIR", "")
	v.SetDefault("EXPORT_FORMAT", "parquet")

	v.SetDefault("SCHEDULE_SPEC", "@daily")

	for _, t := range DefaultTargets {
		suffix := envSuffix(t.Granularity)
		v.SetDefault("COLLECTION_"+suffix, t.Collection)
		v.SetDefault("CAP_"+suffix, t.TickerCap)
	}
}

// envSuffix turns a granularity into its env key suffix (3years -> 3YEARS).
func envSuffix(g models.Granularity) string {
	return strings.ToUpper(string(g))
}

func targetsFrom(v *viper.Viper) []models.Target {
	targets := make([]models.Target, 0, len(DefaultTargets))
	for _, t := range DefaultTargets {
		suffix := envSuffix(t.Granularity)
		targets = append(targets, models.Target{
			Collection:  strings.TrimSpace(v.GetString("COLLECTION_" + suffix)),
			Granularity: t.Granularity,
			TickerCap:   v.GetInt("CAP_" + suffix),
		})
	}
	return targets
}

// validate ensures required values are present and coherent.
//
// Behavior:
//   - Checks each critical field of the config.
//   - Collects problems in a slice.
//   - Returns a single error listing all of them, or nil.
func (c Config) validate() error {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}

	switch c.Store.Driver {
	case "mongo":
		if c.Mongo.URI == "" {
			problems = append(problems, "MONGO_URI")
		}
		if c.Mongo.Database == "" {
			problems = append(problems, "MONGO_DB")
		}
	case "postgres":
		if c.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER")
		}
		if c.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB")
		}
	case "sqlite":
		if c.SQLite.Path == "" {
			problems = append(problems, "SQLITE_PATH")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER (unsupported %q)", c.Store.Driver))
	}

	if c.Loader.InputPath == "" {
		problems = append(problems, "INPUT_PATH")
	}
	if c.Loader.BatchSize <= 0 {
		problems = append(problems, "BATCH_SIZE (must be > 0)")
	}

	seen := make(map[string]bool)
	for _, t := range c.Loader.Targets {
		suffix := envSuffix(t.Granularity)
		if t.Collection == "" {
			problems = append(problems, "COLLECTION_"+suffix)
			continue
		}
		if seen[t.Collection] {
			problems = append(problems, fmt.Sprintf("COLLECTION_%s (duplicate %q)", suffix, t.Collection))
		}
		seen[t.Collection] = true
	}

	if c.Export.Dir != "" && c.Export.Format != "parquet" && c.Export.Format != "json" {
		problems = append(problems, fmt.Sprintf("EXPORT_FORMAT (unsupported %q)", c.Export.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, ", "))
	}
	return nil
}

// CollectionFor returns the collection configured for a granularity.
func (c LoaderConfig) CollectionFor(g models.Granularity) (string, bool) {
	for _, t := range c.Targets {
		if t.Granularity == g {
			return t.Collection, true
		}
	}
	return "", false
}
