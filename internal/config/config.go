package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	ListingSourceHTTP   = "http"
	ListingSourceStatic = "static"

	EventsDriverGoChannel = "gochannel"
	EventsDriverRedis     = "redis"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Logs           LogsConfig           `toml:"logs"`
	Database       DatabaseConfig       `toml:"database"`
	Storage        StorageConfig        `toml:"storage"`
	Metrics        MetricsConfig        `toml:"metrics"`
	ListingService ListingServiceConfig `toml:"listing_service"`
	ProfileService ProfileServiceConfig `toml:"profile_service"`
	Redis          RedisConfig          `toml:"redis"`
	Events         EventsConfig         `toml:"events"`
	RateLimit      RateLimitConfig      `toml:"rate_limit"`
	Booking        BookingConfig        `toml:"booking"`
	Spaces         []SpaceConfig        `toml:"spaces"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type ListingServiceConfig struct {
	Source   string `toml:"source"`
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`
	CacheTTL int    `toml:"cache_ttl"`
}

type ProfileServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

type EventsConfig struct {
	Driver string `toml:"driver"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// BookingConfig значения политики отмены по умолчанию
// Нулевые значения заменяются на 2 часа и 50%, иные правила задаются политиками хоста
type BookingConfig struct {
	FreeCancellationHours      int `toml:"free_cancellation_hours"`
	LateCancellationFeePercent int `toml:"late_cancellation_fee_percent"`
}

// SpaceConfig парковочное место статического каталога
// Денежные и размерные значения задаются строками и разбираются как decimal
type SpaceConfig struct {
	ID                       string            `toml:"id"`
	HostID                   string            `toml:"host_id"`
	Title                    string            `toml:"title"`
	Address                  string            `toml:"address"`
	PricePerHour             string            `toml:"price_per_hour"`
	MinimumDurationHours     int               `toml:"minimum_duration_hours"`
	FirstHourDiscountEnabled bool              `toml:"first_hour_discount_enabled"`
	FirstHourDiscountPercent int               `toml:"first_hour_discount_percent"`
	MaxLength                string            `toml:"max_length"`
	MaxWidth                 string            `toml:"max_width"`
	MaxHeight                string            `toml:"max_height"`
	AllowsTrucks             bool              `toml:"allows_trucks"`
	EVCharging               bool              `toml:"ev_charging"`
	Covered                  bool              `toml:"covered"`
	Security                 bool              `toml:"security"`
	HeightLimit              string            `toml:"height_limit"`
	Distance                 string            `toml:"distance"`
	EventRules               []EventRuleConfig `toml:"event_rules"`
}

type EventRuleConfig struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	StartsAt   string `toml:"starts_at"`
	EndsAt     string `toml:"ends_at"`
	Multiplier string `toml:"multiplier"`
	Active     bool   `toml:"active"`
}

// Load загружает конфигурацию из TOML файла
// Переменные из .env (если файл есть) и окружения подставляются вместо ${VAR}
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(os.ExpandEnv(string(data)), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults(md)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// PathFromEnv возвращает путь к конфигу из CONFIG_PATH или config.toml
func PathFromEnv() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.toml"
}

// applyDefaults заполняет незаданные значения
// Для правил отмены 0 допустим, поэтому подставляются только отсутствующие в файле ключи
func (c *Config) applyDefaults(md toml.MetaData) {
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

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
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

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "parking_service"
	}

	if c.ListingService.Source == "" {
		c.ListingService.Source = ListingSourceHTTP
	}
	if c.ListingService.Timeout == 0 {
		c.ListingService.Timeout = 5
	}
	if c.ListingService.CacheTTL == 0 {
		c.ListingService.CacheTTL = 60
	}

	if c.ProfileService.Timeout == 0 {
		c.ProfileService.Timeout = 5
	}

	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}

	if c.Events.Driver == "" {
		c.Events.Driver = EventsDriverGoChannel
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}

	if !md.IsDefined("booking", "free_cancellation_hours") {
		c.Booking.FreeCancellationHours = domain.DefaultFreeCancellationHours
	}
	if !md.IsDefined("booking", "late_cancellation_fee_percent") {
		c.Booking.LateCancellationFeePercent = domain.DefaultLateCancellationFeePercent
	}

	for i := range c.Spaces {
		if c.Spaces[i].MinimumDurationHours == 0 {
			c.Spaces[i].MinimumDurationHours = 1
		}
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database host and dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.ListingService.Source {
	case ListingSourceHTTP:
		if c.ListingService.URL == "" {
			return fmt.Errorf("%w: listing_service.url is required for http source", ErrInvalidConfig)
		}
	case ListingSourceStatic:
		if len(c.Spaces) == 0 {
			return fmt.Errorf("%w: static listing source needs at least one [[spaces]] entry", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown listing source %q", ErrInvalidConfig, c.ListingService.Source)
	}

	if c.ProfileService.URL == "" {
		return fmt.Errorf("%w: profile_service.url is required", ErrInvalidConfig)
	}

	switch c.Events.Driver {
	case EventsDriverGoChannel:
	case EventsDriverRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("%w: redis events driver needs [redis] enabled", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events driver %q", ErrInvalidConfig, c.Events.Driver)
	}

	if c.Redis.Enabled && c.Redis.Address == "" {
		return fmt.Errorf("%w: redis.address is required", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && c.RateLimit.RPS < 0 {
		return fmt.Errorf("%w: rate_limit.rps must be positive", ErrInvalidConfig)
	}

	if c.Booking.FreeCancellationHours < 0 || c.Booking.FreeCancellationHours > 168 {
		return fmt.Errorf("%w: booking.free_cancellation_hours must be in 0..168", ErrInvalidConfig)
	}
	if c.Booking.LateCancellationFeePercent < 0 || c.Booking.LateCancellationFeePercent > 100 {
		return fmt.Errorf("%w: booking.late_cancellation_fee_percent must be in 0..100", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Spaces))
	for _, s := range c.Spaces {
		if s.ID == "" || s.HostID == "" || s.PricePerHour == "" {
			return fmt.Errorf("%w: space entries need id, host_id and price_per_hour", ErrInvalidConfig)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: duplicate space id %q", ErrInvalidConfig, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return nil
}
