package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 22, cfg.MallClosingHour)
	assert.False(t, cfg.AllowMaintenanceOverride)
	assert.Equal(t, time.Minute, cfg.OverdueCheckInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MALL_CLOSING_HOUR", "23")
	t.Setenv("ALLOW_MAINTENANCE_OVERRIDE", "true")
	t.Setenv("OVERDUE_CHECK_INTERVAL_MINUTES", "5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 23, cfg.MallClosingHour)
	assert.True(t, cfg.AllowMaintenanceOverride)
	assert.Equal(t, 5*time.Minute, cfg.OverdueCheckInterval)
}
