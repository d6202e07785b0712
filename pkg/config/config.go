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

	LMS      LMSConfig
	Semester SemesterConfig
	Session  SessionConfig
	Redis    RedisConfig
	Mail     MailConfig
	Notify   NotifyConfig
	CORS     CORSConfig
	Log      LogConfig
}

// LMSConfig locates the external LMS API and the query filters the
// enrollment listing uses.
type LMSConfig struct {
	Scheme        string
	Host          string
	APIVersion    string
	AppID         string
	AppKey        string
	UserID        string
	UserKey       string
	RoleID        string
	OrgUnitTypeID string
	Timeout       time.Duration
}

// SemesterConfig carries the institutional semester-code scheme constants.
type SemesterConfig struct {
	InstitutionTag string
	BaseYear       int
	FallDigit      string
	SpringDigit    string
	SummerDigit    string
}

// SessionConfig governs workflow session tokens and storage.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Store  string // "memory" or "redis"
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MailConfig names the combine-request mailbox and the requester's domain.
type MailConfig struct {
	CombineMailbox string
	EmailDomain    string
	SiteAdmin      string
}

// NotifyConfig tunes asynchronous confirmation delivery.
type NotifyConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
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

	cfg.LMS = LMSConfig{
		Scheme:        v.GetString("LMS_SCHEME"),
		Host:          v.GetString("LMS_HOST"),
		APIVersion:    v.GetString("LMS_API_VERSION"),
		AppID:         v.GetString("LMS_APP_ID"),
		AppKey:        v.GetString("LMS_APP_KEY"),
		UserID:        v.GetString("LMS_USER_ID"),
		UserKey:       v.GetString("LMS_USER_KEY"),
		RoleID:        v.GetString("LMS_ROLE_ID"),
		OrgUnitTypeID: v.GetString("LMS_ORG_UNIT_TYPE_ID"),
		Timeout:       parseDuration(v.GetString("LMS_TIMEOUT"), 15*time.Second),
	}

	cfg.Semester = SemesterConfig{
		InstitutionTag: v.GetString("INSTITUTION_TAG"),
		BaseYear:       v.GetInt("SEMESTER_BASE_YEAR"),
		FallDigit:      v.GetString("SEMESTER_FALL_DIGIT"),
		SpringDigit:    v.GetString("SEMESTER_SPRING_DIGIT"),
		SummerDigit:    v.GetString("SEMESTER_SUMMER_DIGIT"),
	}

	cfg.Session = SessionConfig{
		Secret: v.GetString("SESSION_SECRET"),
		TTL:    parseDuration(v.GetString("SESSION_TTL"), 2*time.Hour),
		Store:  v.GetString("SESSION_STORE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Mail = MailConfig{
		CombineMailbox: v.GetString("MAIL_COMBINE_MAILBOX"),
		EmailDomain:    v.GetString("MAIL_EMAIL_DOMAIN"),
		SiteAdmin:      v.GetString("MAIL_SITE_ADMIN"),
	}

	cfg.Notify = NotifyConfig{
		Workers:    v.GetInt("NOTIFY_WORKERS"),
		MaxRetries: v.GetInt("NOTIFY_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("NOTIFY_RETRY_DELAY"), 30*time.Second),
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
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("LMS_SCHEME", "https")
	v.SetDefault("LMS_HOST", "uwosh.courses.wisconsin.edu")
	v.SetDefault("LMS_API_VERSION", "1.0")
	v.SetDefault("LMS_APP_ID", "")
	v.SetDefault("LMS_APP_KEY", "")
	v.SetDefault("LMS_USER_ID", "")
	v.SetDefault("LMS_USER_KEY", "")
	v.SetDefault("LMS_ROLE_ID", "964")
	v.SetDefault("LMS_ORG_UNIT_TYPE_ID", "3")
	v.SetDefault("LMS_TIMEOUT", "15s")

	v.SetDefault("INSTITUTION_TAG", "UWOSH")
	v.SetDefault("SEMESTER_BASE_YEAR", 1945)
	v.SetDefault("SEMESTER_FALL_DIGIT", "0")
	v.SetDefault("SEMESTER_SPRING_DIGIT", "5")
	v.SetDefault("SEMESTER_SUMMER_DIGIT", "8")

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_STORE", "memory")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("MAIL_COMBINE_MAILBOX", "coursecombine@uwosh.edu")
	v.SetDefault("MAIL_EMAIL_DOMAIN", "uwosh.edu")
	v.SetDefault("MAIL_SITE_ADMIN", "d2ladmin@uwosh.edu")

	v.SetDefault("NOTIFY_WORKERS", 1)
	v.SetDefault("NOTIFY_MAX_RETRIES", 3)
	v.SetDefault("NOTIFY_RETRY_DELAY", "30s")

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
