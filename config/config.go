package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	Booking BookingConfig
	Log     LogConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BookingConfig controls slot generation and availability queries.
type BookingConfig struct {
	SlotDuration     time.Duration
	MaxRangeDays     int
	DefaultRangeDays int
	CacheTTL         time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	File   LogFileConfig
}

type LogFileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_TIMEZONE", "UTC")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DB_NAME", "clinic_appointment")
	v.SetDefault("MONGODB_COLLECTION_NAME", "visit_history")
	v.SetDefault("MONGODB_TIMEOUT", "5s")

	v.SetDefault("JWT_ACCESS_EXPIRY", "1h")
	v.SetDefault("JWT_REFRESH_EXPIRY", "24h")

	v.SetDefault("BOOKING_SLOT_DURATION", "30m")
	v.SetDefault("BOOKING_MAX_RANGE_DAYS", 90)
	v.SetDefault("BOOKING_DEFAULT_RANGE_DAYS", 30)
	v.SetDefault("BOOKING_CACHE_TTL", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE_ENABLED", false)
	v.SetDefault("LOG_FILE_PATH", "logs/clinic.log")
	v.SetDefault("LOG_FILE_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_FILE_MAX_BACKUPS", 5)
	v.SetDefault("LOG_FILE_MAX_AGE_DAYS", 30)
	v.SetDefault("LOG_FILE_COMPRESS", true)
}

// LoadConfig reads path (a dotenv file) when it exists and always lets
// environment variables override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Mongo: MongoConfig{
			URI:        v.GetString("MONGODB_URI"),
			Database:   v.GetString("MONGODB_DB_NAME"),
			Collection: v.GetString("MONGODB_COLLECTION_NAME"),
			Timeout:    v.GetDuration("MONGODB_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  v.GetDuration("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: v.GetDuration("JWT_REFRESH_EXPIRY"),
		},
		Booking: BookingConfig{
			SlotDuration:     v.GetDuration("BOOKING_SLOT_DURATION"),
			MaxRangeDays:     v.GetInt("BOOKING_MAX_RANGE_DAYS"),
			DefaultRangeDays: v.GetInt("BOOKING_DEFAULT_RANGE_DAYS"),
			CacheTTL:         v.GetDuration("BOOKING_CACHE_TTL"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File: LogFileConfig{
				Enabled:    v.GetBool("LOG_FILE_ENABLED"),
				Path:       v.GetString("LOG_FILE_PATH"),
				MaxSizeMB:  v.GetInt("LOG_FILE_MAX_SIZE_MB"),
				MaxBackups: v.GetInt("LOG_FILE_MAX_BACKUPS"),
				MaxAgeDays: v.GetInt("LOG_FILE_MAX_AGE_DAYS"),
				Compress:   v.GetBool("LOG_FILE_COMPRESS"),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Booking.SlotDuration < time.Minute {
		return fmt.Errorf("BOOKING_SLOT_DURATION must be at least 1m, got %s", c.Booking.SlotDuration)
	}
	if c.Booking.SlotDuration%time.Minute != 0 || (24*time.Hour)%c.Booking.SlotDuration != 0 {
		return fmt.Errorf("BOOKING_SLOT_DURATION must be whole minutes dividing a day, got %s", c.Booking.SlotDuration)
	}
	if c.Booking.MaxRangeDays < 1 || c.Booking.DefaultRangeDays < 0 || c.Booking.DefaultRangeDays > c.Booking.MaxRangeDays {
		return fmt.Errorf("invalid booking range days: default=%d max=%d", c.Booking.DefaultRangeDays, c.Booking.MaxRangeDays)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return nil
}

// Location returns the clinic time zone. Validate guarantees it loads.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// URL is the connection string form used by golang-migrate.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
