package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendSheets = "sheets"
)

var DefaultMembers = []string{"William", "Ritchie", "Emmanuel", "Grégory", "Kyle"}

type Config struct {
	HTTPAddr     string
	PlanningYear int
	Members      []string
	MinStaff     int

	StoreBackend          string
	DataDir               string
	DatabaseURL           string
	SheetsSpreadsheetID   string
	SheetsCredentialsFile string

	ManagerPassword     string
	ManagerPasswordHash string
	JWTSecret           string
	SessionTTLHours     int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	ManagerEmail string

	TelegramToken         string
	TelegramManagerChatID int64

	LogLevel string
	LogJSON  bool
}

// teamFile is the optional hand-edited roster.
type teamFile struct {
	Members  []string `yaml:"members"`
	MinStaff int      `yaml:"min_staff"`
}

var instance *Config
var once sync.Once

// GetConfig loads the process configuration once and exits on error.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load builds a Config from the environment without touching .env.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		PlanningYear: getEnvAsInt("PLANNING_YEAR", 2026),
		Members:      splitList(getEnv("TEAM_MEMBERS", "")),
		MinStaff:     getEnvAsInt("MIN_STAFF", 3),

		StoreBackend:          strings.ToLower(getEnv("STORE_BACKEND", BackendJSON)),
		DataDir:               getEnv("DATA_DIR", "data"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),

		ManagerPassword:     getEnv("MANAGER_PASSWORD", ""),
		ManagerPasswordHash: getEnv("MANAGER_PASSWORD_HASH", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		SessionTTLHours:     getEnvAsInt("SESSION_TTL_HOURS", 12),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		ManagerEmail: getEnv("MANAGER_EMAIL", ""),

		TelegramToken:         getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramManagerChatID: getEnvAsInt64("TELEGRAM_MANAGER_CHAT_ID", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvAsBool("LOG_JSON", false),
	}

	if path := getEnv("TEAM_FILE", ""); path != "" {
		if err := cfg.loadTeamFile(path); err != nil {
			return nil, err
		}
	}
	if len(cfg.Members) == 0 {
		cfg.Members = append([]string(nil), DefaultMembers...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadTeamFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read team file: %w", err)
	}

	var tf teamFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("failed to parse team file: %w", err)
	}

	if len(tf.Members) > 0 {
		c.Members = tf.Members
	}
	if tf.MinStaff > 0 {
		c.MinStaff = tf.MinStaff
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ManagerPassword == "" && c.ManagerPasswordHash == "" {
		return errors.New("MANAGER_PASSWORD or MANAGER_PASSWORD_HASH is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.PlanningYear < 2000 || c.PlanningYear > 2100 {
		return fmt.Errorf("PLANNING_YEAR out of range: %d", c.PlanningYear)
	}
	if c.MinStaff < 0 {
		return fmt.Errorf("MIN_STAFF must not be negative: %d", c.MinStaff)
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive: %d", c.SessionTTLHours)
	}

	switch c.StoreBackend {
	case BackendJSON:
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required for the json backend")
		}
	case BackendSQLite, BackendMySQL:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", c.StoreBackend)
		}
	case BackendSheets:
		if c.SheetsSpreadsheetID == "" || c.SheetsCredentialsFile == "" {
			return errors.New("SHEETS_SPREADSHEET_ID and SHEETS_CREDENTIALS_FILE are required for the sheets backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func (c *Config) IsMember(name string) bool {
	for _, m := range c.Members {
		if m == name {
			return true
		}
	}
	return false
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.ManagerEmail != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramManagerChatID != 0
}

// SetupLogger applies LOG_LEVEL and LOG_JSON to the standard logrus logger.
func (c *Config) SetupLogger() {
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logrus.Warnf("unknown LOG_LEVEL %q, keeping %s", c.LogLevel, logrus.GetLevel())
	}

	if c.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt64(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
