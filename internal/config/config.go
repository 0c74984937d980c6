package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when the registry API key is not configured.
var ErrMissingCredential = errors.New("MOLIT_API_KEY is required")

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string
	DBDriver string
	DBConn   string

	APIKey    string
	APIURL    string
	APIFormat string
	Start     models.YearMonth
	End       models.YearMonth
	Delay     time.Duration

	SQLOutput   string
	BatchSize   int
	DBTool      string
	DBName      string
	ApplyDirect bool
	XLSXOutput  string
	CronSpec    string

	JWTSecret         string
	AdminPasswordHash string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	ReportEmail  string
}

// NewConfig loads configuration from the environment. Values from the env-file
// (ENV_FILE, default .dev.vars) fill in keys the process environment lacks.
func NewConfig() (*Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".dev.vars")); err != nil {
		return nil, err
	}

	start, err := models.ParseYearMonth(getEnv("INGEST_START", "202212"))
	if err != nil {
		return nil, fmt.Errorf("INGEST_START: %w", err)
	}
	end, err := models.ParseYearMonth(getEnv("INGEST_END", "202511"))
	if err != nil {
		return nil, fmt.Errorf("INGEST_END: %w", err)
	}
	delayMS, err := getEnvInt("INGEST_DELAY_MS", 1000)
	if err != nil {
		return nil, err
	}
	batchSize, err := getEnvInt("SQL_BATCH_SIZE", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBConn:   getEnv("DB_CONN", "webapp.sqlite"),

		APIKey:    strings.TrimSpace(getEnv("MOLIT_API_KEY", "")),
		APIURL:    getEnv("MOLIT_API_URL", "http://openapi.molit.go.kr/OpenAPI_ToolInstallPackage/service/rest/RTMSOBJSvc/getRTMSDataSvcAptTradeDev"),
		APIFormat: strings.ToLower(getEnv("MOLIT_FORMAT", "xml")),
		Start:     start,
		End:       end,
		Delay:     time.Duration(delayMS) * time.Millisecond,

		SQLOutput:   getEnv("SQL_OUTPUT", "/tmp/insert_trades.sql"),
		BatchSize:   batchSize,
		DBTool:      getEnv("DB_TOOL", ""),
		DBName:      getEnv("DB_NAME", "webapp-production"),
		ApplyDirect: getEnv("APPLY_DIRECT", "false") == "true",
		XLSXOutput:  getEnv("XLSX_OUTPUT", ""),
		CronSpec:    getEnv("INGEST_CRON", "0 3 * * *"),

		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		ReportEmail:  getEnv("REPORT_EMAIL", ""),
	}

	if cfg.APIFormat != "xml" && cfg.APIFormat != "json" {
		return nil, fmt.Errorf("MOLIT_FORMAT must be xml or json, got %q", cfg.APIFormat)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("SQL_BATCH_SIZE must be positive")
	}
	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}

	return cfg, nil
}

// RequireCredential reports ErrMissingCredential when no API key is set.
func (c *Config) RequireCredential() error {
	if c.APIKey == "" {
		return ErrMissingCredential
	}
	return nil
}

// MailEnabled reports whether run reports can be e-mailed.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != "" && c.ReportEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

// loadEnvFile copies KEY=VALUE pairs into the process environment unless the
// key is already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
