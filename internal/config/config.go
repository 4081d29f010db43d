package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"groupmanagement/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Email       EmailConfig       `yaml:"email"`
	JWT         JWTConfig         `yaml:"jwt"`
	Log         LogConfig         `yaml:"log"`
	App         AppConfig         `yaml:"app"`
	Impersonate ImpersonateConfig `yaml:"impersonate"`
	Identity    IdentityConfig    `yaml:"identity"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `yaml:"idle_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig selects and configures the mail backend
type EmailConfig struct {
	Provider       string     `yaml:"provider"`         // "smtp", "sendgrid" or "log"
	From           string     `yaml:"from"`
	FromName       string     `yaml:"from_name"`
	FrontendURL    string     `yaml:"frontend_url"`
	SMTP           SMTPConfig `yaml:"smtp"`
	SendGridAPIKey string     `yaml:"sendgrid_api_key"`
}

// SMTPConfig contains SMTP relay settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// JWTConfig contains API token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	APITokenExpiryDays int    `yaml:"api_token_expiry_days"`
	BcryptCost         int    `yaml:"bcrypt_cost"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// AppConfig holds the values served by GET /api/config
type AppConfig struct {
	CodeListURL      string `yaml:"code_list_url"`
	DataModelURL     string `yaml:"data_model_url"`
	TerminologyURL   string `yaml:"terminology_url"`
	CommentsURL      string `yaml:"comments_url"`
	Env              string `yaml:"env"`
	Dev              bool   `yaml:"dev"`
	FakeLoginAllowed bool   `yaml:"fake_login_allowed"`
	MessagingEnabled bool   `yaml:"messaging_enabled"`
}

type ImpersonateConfig struct {
	Allowed bool `yaml:"allowed"`
}

// IdentityConfig names the headers set by the authenticating reverse proxy
type IdentityConfig struct {
	EmailHeader     string `yaml:"email_header"`
	FirstNameHeader string `yaml:"first_name_header"`
	LastNameHeader  string `yaml:"last_name_header"`
	FakeLoginCookie string `yaml:"fake_login_cookie"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SendRequestNotifications string `yaml:"send_request_notifications"`
}

// Load reads configuration from a YAML file. A .env file in the working
// directory, when present, is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()
	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("EMAIL_PROVIDER"); val != "" {
		c.Email.Provider = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.Email.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Email.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.Email.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.Email.SMTP.Password = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// App
	if val := os.Getenv("APP_ENV"); val != "" {
		c.App.Env = val
	}
	if val := os.Getenv("FAKE_LOGIN_ALLOWED"); val != "" {
		c.App.FakeLoginAllowed = val == "true"
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}
	if c.Server.IdleTimeoutSeconds == 0 {
		c.Server.IdleTimeoutSeconds = 120
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Email.Provider == "" {
		c.Email.Provider = "log"
	}
	if c.JWT.APITokenExpiryDays == 0 {
		c.JWT.APITokenExpiryDays = 365
	}
	if c.Identity.EmailHeader == "" {
		c.Identity.EmailHeader = "mail"
	}
	if c.Identity.FirstNameHeader == "" {
		c.Identity.FirstNameHeader = "givenname"
	}
	if c.Identity.LastNameHeader == "" {
		c.Identity.LastNameHeader = "surname"
	}
	if c.Identity.FakeLoginCookie == "" {
		c.Identity.FakeLoginCookie = "fake.login.mail"
	}
	if c.Scheduler.SendRequestNotifications == "" {
		c.Scheduler.SendRequestNotifications = "0 */5 * * * *" // every five minutes
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Email validation
	switch c.Email.Provider {
	case "smtp":
		if c.Email.SMTP.Host == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.Email.SMTP.Port <= 0 || c.Email.SMTP.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.Email.SMTP.Port)
		}
	case "sendgrid":
		if c.Email.SendGridAPIKey == "" {
			return fmt.Errorf("SendGrid API key is required")
		}
	case "log":
	default:
		return fmt.Errorf("unknown email provider: %q", c.Email.Provider)
	}
	if c.Email.Provider != "log" && c.Email.From == "" {
		return fmt.Errorf("email sender address is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Fake login is a development aid only
	if c.App.FakeLoginAllowed && !c.App.Dev {
		return fmt.Errorf("fake login requires dev mode")
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) APITokenExpiry() time.Duration {
	return time.Duration(c.JWT.APITokenExpiryDays) * 24 * time.Hour
}

// Configuration returns the non-secret values served to the front end.
func (c *Config) Configuration() domain.ConfigurationModel {
	return domain.ConfigurationModel{
		CodeListURL:        c.App.CodeListURL,
		DataModelURL:       c.App.DataModelURL,
		TerminologyURL:     c.App.TerminologyURL,
		CommentsURL:        c.App.CommentsURL,
		Dev:                c.App.Dev,
		Env:                c.App.Env,
		FakeLoginAllowed:   c.App.FakeLoginAllowed,
		ImpersonateAllowed: c.Impersonate.Allowed,
		MessagingEnabled:   c.App.MessagingEnabled,
	}
}
