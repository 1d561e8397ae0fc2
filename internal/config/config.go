package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	External ExternalConfig
	LedgerDB LedgerDBConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
	Limits   LimitsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"360s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"avkngifts-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// ExternalConfig holds the upstream Avakin gift API settings. Gift sends fan
// out over many accounts upstream with per-item delays, so that timeout is
// much more generous than the balance lookup.
type ExternalConfig struct {
	BaseURL     string        `envconfig:"EXTERNAL_API_URL" default:"http://127.0.0.1:5555"`
	Timeout     time.Duration `envconfig:"EXTERNAL_API_TIMEOUT" default:"30s"`
	GiftTimeout time.Duration `envconfig:"EXTERNAL_API_GIFT_TIMEOUT" default:"300s"`
}

// LedgerDBConfig holds ownership-ledger database settings.
type LedgerDBConfig struct {
	Type string `envconfig:"LEDGER_DB_TYPE" default:"sqlite"` // sqlite or mysql
	Path string `envconfig:"LEDGER_DB_PATH" default:"./data/ledger.db"`
	// MySQL settings
	Host     string `envconfig:"LEDGER_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"LEDGER_DB_PORT" default:"3306"`
	Name     string `envconfig:"LEDGER_DB_NAME" default:"avkngifts"`
	User     string `envconfig:"LEDGER_DB_USER" default:"root"`
	Password string `envconfig:"LEDGER_DB_PASS" default:""`
}

// CacheConfig holds session-store settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CatalogConfig holds the static catalog settings.
type CatalogConfig struct {
	Path string `envconfig:"CATALOG_PATH" default:"./data/items.json"`
}

// LimitsConfig holds the cart admission caps. These are product tuning knobs,
// not a stable contract; the app_settings table overrides them at startup.
// Zero disables the price and total caps.
type LimitsConfig struct {
	MaxCartItems int `envconfig:"MAX_CART_ITEMS" default:"20"`
	MaxItemPrice int `envconfig:"MAX_ITEM_PRICE" default:"30000"`
	MaxCartTotal int `envconfig:"MAX_CART_TOTAL" default:"100000"`
	PageSize     int `envconfig:"CATALOG_PAGE_SIZE" default:"25"`
}

// MySQLDSN returns the MySQL data source name for the ledger.
func (l *LedgerDBConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		l.User, l.Password, l.Host, l.Port, l.Name)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
