package config

import (
	"fmt"
	"os"
)

// Config holds everything the service reads from the environment.
// Secrets are validated once at startup; nothing else reads os.Getenv.
type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	AccessTokenSecret  string
	RefreshTokenSecret string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

// Load reads the configuration from the environment. It fails if any
// required key is missing so a misconfigured process dies at startup
// instead of on the first request.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDB:            os.Getenv("MONGO_DB"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           os.Getenv("SMTP_PORT"),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
	}

	required := map[string]string{
		"MONGO_URI":            cfg.MongoURI,
		"MONGO_DB":             cfg.MongoDB,
		"ACCESS_TOKEN_SECRET":  cfg.AccessTokenSecret,
		"REFRESH_TOKEN_SECRET": cfg.RefreshTokenSecret,
	}
	for key, val := range required {
		if val == "" {
			return nil, fmt.Errorf("%s not set in env", key)
		}
	}

	return cfg, nil
}

// SMTPConfigured reports whether all SMTP settings are present. When they
// are not, OTP mail cannot be sent and the failure is logged instead.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
