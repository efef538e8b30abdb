package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	ROOT_DIR=.
//	INPUT_FILE=data/raw_sales_data.csv
//	OUTPUT_FILE=cleaned/clean_sales_data.csv
//	PREVIEW_ROWS=3
//	LOG_LEVEL=info
//	LOG_PRETTY=true
//	SERVER_PORT=8080
//	POSTGRES_ENABLED=false
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=salesclean
//	POSTGRES_SSLMODE=disable
type Config struct {
	Cleaner  CleanerConfig  // Input/output locations for the cleaning run
	Log      LogConfig      // Logger settings
	Server   ServerConfig   // HTTP server configuration (api mode)
	Postgres PostgresConfig // PostgreSQL connection settings
}

// CleanerConfig locates the files of a cleaning run.
//
// Fields:
//   - RootDir: project root; relative InputFile/OutputFile are resolved against it.
//   - InputFile: raw sales CSV.
//   - OutputFile: destination of the cleaned CSV.
//   - PreviewRows: how many rows the raw/clean snapshots print.
type CleanerConfig struct {
	RootDir     string
	InputFile   string
	OutputFile  string
	PreviewRows int
}

// LogConfig selects level and output format of the logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Enabled turns on the database sink in clean mode. API mode always needs
// the database.
type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance, populated by LoadConfig.
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("ROOT_DIR", ".")
	viper.SetDefault("INPUT_FILE", "data/raw_sales_data.csv")
	viper.SetDefault("OUTPUT_FILE", "cleaned/clean_sales_data.csv")
	viper.SetDefault("PREVIEW_ROWS", 3)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", true)

	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_ENABLED", false)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "salesclean")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Cleaner: CleanerConfig{
			RootDir:     viper.GetString("ROOT_DIR"),
			InputFile:   viper.GetString("INPUT_FILE"),
			OutputFile:  viper.GetString("OUTPUT_FILE"),
			PreviewRows: viper.GetInt("PREVIEW_ROWS"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Enabled:  viper.GetBool("POSTGRES_ENABLED"),
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig terminates the application when required variables are missing.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("missing required configuration: %v\n", missing)
	}
}

// missingKeys lists the required variables that are empty in cfg.
// Postgres settings are only required when the database sink is enabled.
func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Cleaner.InputFile == "" {
		missing = append(missing, "INPUT_FILE")
	}
	if cfg.Cleaner.OutputFile == "" {
		missing = append(missing, "OUTPUT_FILE")
	}
	if cfg.Cleaner.PreviewRows < 0 {
		missing = append(missing, "PREVIEW_ROWS")
	}
	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}

	if !cfg.Postgres.Enabled {
		return missing
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}
