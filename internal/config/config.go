package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all process configuration. It is loaded once in main and
// passed explicitly into each component.
type Config struct {
	// Gemini
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Paths
	OutputDir string `env:"OUTPUT_DIR" envDefault:"./output"`
	QpdfPath  string `env:"QPDF_PATH" envDefault:"qpdf"`

	// PDF
	PDFPassword string `env:"PDF_PASSWORD"`

	// Mail folders (destination mailboxes for processed messages)
	StatementFolder string `env:"STATEMENT_FOLDER" envDefault:"EECC"`
	TaxiFolder      string `env:"TAXI_FOLDER"      envDefault:"Taxis"`

	// Output files
	TaxiCSV           string `env:"TAXI_CSV"            envDefault:"taxi trips.csv"`
	StatementErrorLog string `env:"STATEMENT_ERROR_LOG" envDefault:"errors.log"`
	TaxiErrorLog      string `env:"TAXI_ERROR_LOG"      envDefault:"errors_taxi.log"`

	// Mail bridge
	MailBridgeTimeout time.Duration `env:"MAIL_BRIDGE_TIMEOUT" envDefault:"30s"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// EnsureFolders creates the output directory if it does not exist.
func (c *Config) EnsureFolders() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("config.EnsureFolders: %w", err)
	}
	return nil
}
