package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "usersvc")
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port, "PORT defaults to 8080")
	require.Equal(t, "usersvc", cfg.MongoDB)
	require.False(t, cfg.SMTPConfigured())
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET")
}

func TestSMTPConfigured(t *testing.T) {
	setRequired(t)
	t.Setenv("SMTP_HOST", "smtp.gmail.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "noreply@example.com")
	t.Setenv("SMTP_PASS", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.SMTPConfigured())
}
