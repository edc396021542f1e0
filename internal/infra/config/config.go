package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultCumulativeStartDate = "2025-08-01"

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL         string
	SendGridEndpoint    string
	SendGridBearerToken string
	SenderEmail         string
	RecipientEmails     []string
	CumulativeStartDate time.Time
	CronSpecMonthly     string // Schedule for the report run, 1st of each month
	HTTPListenAddr      string
	LogLevel            string
	Environment         string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.SendGridEndpoint = os.Getenv("SENDGRID_ENDPOINT")
	if cfg.SendGridEndpoint == "" {
		return nil, fmt.Errorf("SENDGRID_ENDPOINT is not set")
	}

	cfg.SendGridBearerToken = os.Getenv("SENDGRID_BEARER_TOKEN")
	if cfg.SendGridBearerToken == "" {
		return nil, fmt.Errorf("SENDGRID_BEARER_TOKEN is not set")
	}

	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is not set")
	}

	recipients, err := splitRecipients(os.Getenv("RECIPIENT_EMAILS"))
	if err != nil {
		return nil, err
	}
	cfg.RecipientEmails = recipients

	startDateStr := os.Getenv("CUMULATIVE_START_DATE")
	if startDateStr == "" {
		startDateStr = defaultCumulativeStartDate
	}
	cfg.CumulativeStartDate, err = time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CUMULATIVE_START_DATE %q: %w", startDateStr, err)
	}

	cfg.CronSpecMonthly = os.Getenv("CRON_SPEC_MONTHLY")
	if cfg.CronSpecMonthly == "" {
		cfg.CronSpecMonthly = "0 8 1 * *" // Default: 8:00 AM on the 1st of each month
	}

	cfg.HTTPListenAddr = os.Getenv("HTTP_LISTEN_ADDR")
	if cfg.HTTPListenAddr == "" {
		cfg.HTTPListenAddr = ":8080"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

// splitRecipients parses the comma-separated RECIPIENT_EMAILS value,
// trimming whitespace and dropping empty entries.
func splitRecipients(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("RECIPIENT_EMAILS is not set")
	}
	recipients := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("RECIPIENT_EMAILS contains no addresses")
	}
	return recipients, nil
}
