package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetConfig_EnvOverridesYAML(t *testing.T) {
	config.DBHost = "yaml-host"
	t.Cleanup(func() { config.DBHost = "" })

	assert.Equal(t, "yaml-host", GetConfig("DB_HOST"))

	t.Setenv("DB_HOST", "env-host")
	assert.Equal(t, "env-host", GetConfig("DB_HOST"))
}

func TestGetConfig_Defaults(t *testing.T) {
	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "https://www.themealdb.com/api/json/v1/1", GetConfig("MEALDB_BASE_URL"))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("REDIS_TTL", "30m")
	assert.Equal(t, 30*time.Minute, GetDuration("REDIS_TTL", time.Hour))

	t.Setenv("REDIS_TTL", "90")
	assert.Equal(t, 90*time.Second, GetDuration("REDIS_TTL", time.Hour))

	t.Setenv("REDIS_TTL", "soon")
	assert.Equal(t, time.Hour, GetDuration("REDIS_TTL", time.Hour))
}

func TestGetLocation_FallsBackToUTC(t *testing.T) {
	t.Setenv("TIMEZONE", "Not/AZone")
	assert.Equal(t, time.UTC, GetLocation())
}
