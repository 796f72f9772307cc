package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// GoogleCredentials holds the service-account identity used to talk to the
// calendar backend. An empty ClientEmail or PrivateKey means the calendar
// integration runs in mock mode instead of crashing the handlers.
type GoogleCredentials struct {
	ClientEmail       string
	PrivateKey        string
	ToApproveCalendar string
	ApprovedCalendar  string
}

// Configured reports whether a usable service-account credential is present.
func (g GoogleCredentials) Configured() bool {
	return g.ClientEmail != "" && g.PrivateKey != ""
}

type SMTPConfig struct {
	From     string
	Password string
	Host     string
	Port     string
}

type Config struct {
	Port     string
	BaseURL  string
	RedisURL string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	Google GoogleCredentials
	SMTP   SMTPConfig

	// BusinessEmail receives the new-booking notifications.
	BusinessEmail string

	JWTSecret string

	// AdminEmail/AdminPasswordHash authenticate the business owner on the
	// admin endpoints. The hash is a bcrypt hash, never a plain password.
	AdminEmail        string
	AdminPasswordHash string

	// Depot origin used for the delivery surcharge. Defaults to the
	// warehouse in Aarschot.
	OriginLat float64
	OriginLng float64
}

// Load reads the process environment (optionally seeded from a .env file)
// into an explicit Config. Handlers and services receive this struct at
// construction time; nothing reads credential env vars after boot.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		RedisURL: os.Getenv("REDIS_URL"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		Google: GoogleCredentials{
			ClientEmail: os.Getenv("GOOGLE_CLIENT_EMAIL"),
			// Private keys arrive with literal \n sequences when set
			// through most dashboards.
			PrivateKey:        strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
			ToApproveCalendar: os.Getenv("GOOGLE_CALENDAR_ID"),
			ApprovedCalendar:  os.Getenv("GOOGLE_APPROVED_CALENDAR_ID"),
		},

		SMTP: SMTPConfig{
			From:     os.Getenv("EMAIL_FROM"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
		},

		BusinessEmail: getEnv("BUSINESS_EMAIL", "feestindetentverhuur@gmail.com"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		OriginLat: getEnvFloat("ORIGIN_LAT", 50.9848),
		OriginLng: getEnvFloat("ORIGIN_LNG", 4.8373),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
