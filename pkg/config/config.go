package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Password PasswordConfig
	Cleanup  CleanupConfig
	CORS     CORSConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig pins the token signing material and lifetimes. One HMAC
// algorithm is used for the whole system; access and refresh tokens are
// signed with independent secrets.
type JWTConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// CookieConfig controls how tokens travel between client and server.
type CookieConfig struct {
	Domain        string
	Secure        bool
	AccessMaxAge  int
	RefreshMaxAge int
}

type PasswordConfig struct {
	BcryptCost int
	MinLength  int
}

// CleanupConfig drives the expired-revocation sweep.
type CleanupConfig struct {
	Enabled  bool
	Interval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    v.GetString("JWT_ACCESS_SECRET"),
		RefreshSecret:   v.GetString("JWT_REFRESH_SECRET"),
		AccessTokenTTL:  time.Duration(v.GetInt("JWT_ACCESS_TOKEN_TTL_SECONDS")) * time.Second,
		RefreshTokenTTL: time.Duration(v.GetInt("JWT_REFRESH_TOKEN_TTL_SECONDS")) * time.Second,
	}

	cfg.Cookie = CookieConfig{
		Domain:        v.GetString("COOKIE_DOMAIN"),
		Secure:        v.GetBool("COOKIE_SECURE"),
		AccessMaxAge:  v.GetInt("COOKIE_ACCESS_TOKEN_MAX_AGE_SECONDS"),
		RefreshMaxAge: v.GetInt("COOKIE_REFRESH_TOKEN_MAX_AGE_SECONDS"),
	}

	cfg.Password = PasswordConfig{
		BcryptCost: v.GetInt("PASSWORD_BCRYPT_COST"),
		MinLength:  v.GetInt("PASSWORD_MIN_LENGTH"),
	}

	cfg.Cleanup = CleanupConfig{
		Enabled:  v.GetBool("REVOCATION_CLEANUP_ENABLED"),
		Interval: parseDuration(v.GetString("REVOCATION_CLEANUP_INTERVAL"), time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "marginalia")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_ACCESS_SECRET", "dev_access_secret")
	v.SetDefault("JWT_REFRESH_SECRET", "dev_refresh_secret")
	// 1 day
	v.SetDefault("JWT_ACCESS_TOKEN_TTL_SECONDS", 86400)
	// ~6 months
	v.SetDefault("JWT_REFRESH_TOKEN_TTL_SECONDS", 15780000)

	v.SetDefault("COOKIE_DOMAIN", "localhost")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("COOKIE_ACCESS_TOKEN_MAX_AGE_SECONDS", 86400)
	v.SetDefault("COOKIE_REFRESH_TOKEN_MAX_AGE_SECONDS", 15780000)

	v.SetDefault("PASSWORD_BCRYPT_COST", 12)
	v.SetDefault("PASSWORD_MIN_LENGTH", 8)

	v.SetDefault("REVOCATION_CLEANUP_ENABLED", true)
	v.SetDefault("REVOCATION_CLEANUP_INTERVAL", "1h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
