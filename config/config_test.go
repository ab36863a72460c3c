package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SEND_ALLOWED_ROLES", "")

	cfg := Load()
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "static", cfg.TemplateSource)
	assert.Equal(t, []string{"shipper", "admin"}, cfg.AllowedSendRoles())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestAllowedSendRolesNormalized(t *testing.T) {
	t.Setenv("SEND_ALLOWED_ROLES", " Shipper , ADMIN,,Documentation Department ")

	cfg := Load()
	assert.Equal(t, []string{"shipper", "admin", "documentation department"}, cfg.AllowedSendRoles())
}

func TestLoadMailSettings(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAIL_HOST", "smtp.co.test")
	t.Setenv("MAIL_PORT", "465")
	t.Setenv("MAIL_SECURE", "true")
	t.Setenv("MAIL_FROM", "ops@co.test")
	t.Setenv("MAIL_SEND_TIMEOUT", "3s")

	s := LoadMailSettings()
	assert.True(t, s.Production)
	assert.Equal(t, "smtp.co.test", s.Host)
	assert.Equal(t, 465, s.Port)
	assert.True(t, s.Secure)
	assert.Equal(t, "ops@co.test", s.From)
	assert.Equal(t, 3*time.Second, s.SendTimeout)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAIL_PORT", "not-a-port")
	t.Setenv("MAIL_SECURE", "maybe")

	s := LoadMailSettings()
	assert.Equal(t, 587, s.Port)
	assert.False(t, s.Secure)
}
