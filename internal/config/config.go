package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
)

const (
	ProviderDatabase = "database"
	ProviderShop     = "shop"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Shop        ShopConfig        `toml:"shop"`
	Provider    ProviderConfig    `toml:"provider"`
	ShopService ShopServiceConfig `toml:"shop_service"`
	Redis       RedisConfig       `toml:"redis"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	CORS        CORSConfig        `toml:"cors"`
	Scheduler   SchedulerConfig   `toml:"scheduler"`
	Auth        AuthConfig        `toml:"auth"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ShopConfig правила магазина по умолчанию (для товаров без своей конфигурации в БД)
type ShopConfig struct {
	Timezone          string       `toml:"timezone"`
	Currency          string       `toml:"currency"`
	PickupHour        int          `toml:"pickup_hour"`
	CutoffBufferHours int          `toml:"cutoff_buffer_hours"`
	MaxRentalDays     int          `toml:"max_rental_days"`
	AllowJoin         *bool        `toml:"allow_join"`
	ZeroStockJoins    bool         `toml:"zero_stock_joins"`
	ClosedWeekdays    []string     `toml:"closed_weekdays"`
	Tiers             []TierConfig `toml:"tiers"`
}

type TierConfig struct {
	ThresholdDays   int     `toml:"threshold_days"`
	DiscountPercent float64 `toml:"discount_percent"`
}

// Location часовой пояс магазина
func (s ShopConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Weekdays разбирает closed_weekdays ("saturday", "sat", ...)
func (s ShopConfig) Weekdays() ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(s.ClosedWeekdays))
	for _, name := range s.ClosedWeekdays {
		wd, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		out = append(out, wd)
	}
	return out, nil
}

// RentalDefaults конфигурация аренды, используемая, если в БД ничего не найдено
func (s ShopConfig) RentalDefaults() *domain.ItemRentalConfig {
	cfg := domain.DefaultRentalConfig()
	cfg.PickupHour = s.PickupHour
	cfg.CutoffBufferHours = s.CutoffBufferHours
	cfg.MaxRentalDays = s.MaxRentalDays
	if s.AllowJoin != nil {
		cfg.AllowJoin = *s.AllowJoin
	}
	cfg.ZeroStockJoins = s.ZeroStockJoins

	if len(s.Tiers) > 0 {
		cfg.Tiers = make(domain.PricingTiers, 0, len(s.Tiers))
		for _, t := range s.Tiers {
			cfg.Tiers = append(cfg.Tiers, domain.PricingTier{
				ThresholdDays:   t.ThresholdDays,
				DiscountPercent: t.DiscountPercent,
			})
		}
	}
	return cfg
}

type ProviderConfig struct {
	Mode string `toml:"mode"` // "database" | "shop"
}

type ShopServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
	APIKey  string `toml:"api_key"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Prefix            string   `toml:"prefix"`
	FailOpen          bool     `toml:"fail_open"`
	TrustedProxies    []string `toml:"trusted_proxies"` // IP или CIDR, от которых принимается X-Forwarded-For
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
}

type SchedulerConfig struct {
	Enabled              bool   `toml:"enabled"`
	CompleteReservations string `toml:"complete_reservations"` // cron-выражение
}

type AuthConfig struct {
	StaffUserIDs []int64 `toml:"staff_user_ids"`
}

// IsStaff true, если пользователь - сотрудник магазина
func (a AuthConfig) IsStaff(userID int64) bool {
	for _, id := range a.StaffUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Load читает .env (если есть), TOML-файл, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах)
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("LOG_LEVEL", &c.Logs.Level)
	setString("PROVIDER_MODE", &c.Provider.Mode)
	setString("SHOP_SERVICE_URL", &c.ShopService.URL)
	setString("SHOP_SERVICE_API_KEY", &c.ShopService.APIKey)
	setString("SHOP_TIMEZONE", &c.Shop.Timezone)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)

	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	return setInt("HTTP_PORT", &c.Server.HTTPPort)
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "rental-service"
	}

	if c.Shop.Timezone == "" {
		c.Shop.Timezone = domain.DefaultTimezone
	}
	if c.Shop.Currency == "" {
		c.Shop.Currency = domain.DefaultCurrency
	}
	if c.Shop.PickupHour == 0 {
		c.Shop.PickupHour = domain.DefaultPickupHour
	}
	if c.Shop.CutoffBufferHours == 0 {
		c.Shop.CutoffBufferHours = domain.DefaultCutoffBufferHours
	}
	if c.Shop.MaxRentalDays == 0 {
		c.Shop.MaxRentalDays = domain.DefaultMaxRentalDays
	}
	if c.Shop.ClosedWeekdays == nil {
		for _, wd := range domain.DefaultClosedWeekdays {
			c.Shop.ClosedWeekdays = append(c.Shop.ClosedWeekdays, strings.ToLower(wd.String()))
		}
	}

	if c.Provider.Mode == "" {
		c.Provider.Mode = ProviderDatabase
	}
	if c.ShopService.Timeout == 0 {
		c.ShopService.Timeout = 5
	}

	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 120
	}
	if c.RateLimit.Prefix == "" {
		c.RateLimit.Prefix = "rental:rl"
	}

	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "X-User-ID", "X-Request-ID"}
	}

	if c.Scheduler.CompleteReservations == "" {
		c.Scheduler.CompleteReservations = "0 5 0 * * *"
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Provider.Mode {
	case ProviderDatabase:
	case ProviderShop:
		if c.ShopService.URL == "" {
			return fmt.Errorf("%w: shop_service.url is required for provider.mode=%q", ErrInvalidConfig, ProviderShop)
		}
	default:
		return fmt.Errorf("%w: unknown provider.mode %q", ErrInvalidConfig, c.Provider.Mode)
	}

	if _, err := c.Shop.Location(); err != nil {
		return fmt.Errorf("%w: shop.timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Shop.Weekdays(); err != nil {
		return fmt.Errorf("%w: shop.closed_weekdays: %v", ErrInvalidConfig, err)
	}
	defaults := c.Shop.RentalDefaults()
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("%w: shop: %v", ErrInvalidConfig, err)
	}
	if err := pricing.ValidateTiers(defaults.Tiers); err != nil {
		return fmt.Errorf("%w: shop.tiers: %v", ErrInvalidConfig, err)
	}

	if c.RateLimit.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when rate_limit is enabled", ErrInvalidConfig)
	}

	return nil
}

func parseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if n == full || n == full[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
