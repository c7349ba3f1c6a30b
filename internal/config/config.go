package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration loaded from environment variables.
// Defaults are suitable for local development only.
type Config struct {
	Env  string // development, staging, production
	Port string

	MongoURI      string
	MongoDatabase string

	JWTSecret string

	// Break-glass admin credentials. The bypass is only active when both
	// values are set; see handlers.Login.
	AdminEmail    string
	AdminPassword string

	RazorpayKeyID     string
	RazorpayKeySecret string

	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string
	NotifyEmail   string // operations inbox for booking notifications

	CORSAllowedOrigins []string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load reads configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Env:  getenv("APP_ENV", "development"),
		Port: getenv("API_PORT", "8080"),

		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "fixu"),

		JWTSecret: getenv("JWT_SECRET", ""),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		RazorpayKeyID:     getenv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getenv("RAZORPAY_KEY_SECRET", ""),

		MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),
		MailgunSender: os.Getenv("MAILGUN_SENDER"),
		NotifyEmail:   getenv("NOTIFY_EMAIL", "support@fixu.in"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}
	return cfg
}

// AdminBypassEnabled reports whether the environment-gated admin login is
// configured.
func (c *Config) AdminBypassEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// CookieSecure reports whether the auth cookie should be marked Secure.
// Secure everywhere except local development, unless overridden.
func (c *Config) CookieSecure() bool {
	return getbool("COOKIE_SECURE", c.Env != "development")
}
