package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"AGENCY_APP_NAME",
	"AGENCY_APP_ENV",
	"AGENCY_APP_PORT",
	"AGENCY_DATABASE_HOST",
	"AGENCY_DATABASE_PORT",
	"AGENCY_DATABASE_USER",
	"AGENCY_DATABASE_PASSWORD",
	"AGENCY_DATABASE_DBNAME",
	"AGENCY_DATABASE_SSLMODE",
	"AGENCY_DATABASE_MAX_OPEN_CONNS",
	"AGENCY_DATABASE_MAX_IDLE_CONNS",
	"AGENCY_REDIS_HOST",
	"AGENCY_SIDEBAR_CACHE_TTL",
	"AGENCY_HTTP_CORS_ALLOW_ORIGINS",
	"AGENCY_TELEMETRY_SAMPLING_RATIO",
}

// clearEnv unsets every key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "agency-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "agency", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "", cfg.Redis.Host, "redis is opt-in")
		assert.Equal(t, 5*time.Minute, cfg.Sidebar.CacheTTL)
		assert.Empty(t, cfg.Sidebar.Categories)
		assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodyBytes)
		assert.Zero(t, cfg.HTTP.WriteRateLimit)
		assert.Equal(t, time.Minute, cfg.HTTP.WriteRateWindow)
		assert.True(t, cfg.Telemetry.MetricsEnabled)
	})

	t.Run("loads values from environment variables with AGENCY prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AGENCY_APP_NAME", "test-app")
		t.Setenv("AGENCY_APP_PORT", "9000")
		t.Setenv("AGENCY_DATABASE_HOST", "testdb.local")
		t.Setenv("AGENCY_DATABASE_PORT", "5433")
		t.Setenv("AGENCY_DATABASE_PASSWORD", "testpass")
		t.Setenv("AGENCY_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("AGENCY_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("AGENCY_REDIS_HOST", "cache.local")
		t.Setenv("AGENCY_SIDEBAR_CACHE_TTL", "90s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "cache.local:6379", cfg.Redis.Addr())
		assert.Equal(t, 90*time.Second, cfg.Sidebar.CacheTTL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AGENCY_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("AGENCY_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AGENCY_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AGENCY_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AGENCY_APP_ENV", "production")
		t.Setenv("AGENCY_DATABASE_PASSWORD", "secure-password")
		t.Setenv("AGENCY_DATABASE_SSLMODE", "require")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		require.NoError(t, os.Unsetenv("AGENCY_DATABASE_PASSWORD"))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("AGENCY_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("AGENCY_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestFromViper_SidebarCategories(t *testing.T) {
	const toml = `
[sidebar]
cache_ttl = "1m"
category_order = ["Stores", "Admin"]

[sidebar.categories]
"Sub Accounts" = "Stores"
Settings = "Admin"

[telemetry]
metrics_enabled = false
`
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(toml)))

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.Sidebar.CacheTTL)
	assert.Equal(t, []string{"Stores", "Admin"}, cfg.Sidebar.CategoryOrder)
	// viper lower-cases keys; the categorizer folds case on lookup
	assert.Equal(t, "Stores", cfg.Sidebar.Categories["sub accounts"])
	assert.Equal(t, "Admin", cfg.Sidebar.Categories["settings"])
	assert.False(t, cfg.Telemetry.MetricsEnabled)
}

func TestFromViper_OrderWithoutCategories(t *testing.T) {
	v := viper.New()
	v.Set("sidebar.category_order", []string{"Sales"})

	_, err := fromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires sidebar.categories")
}

func TestLoad_ReportsEveryViolation(t *testing.T) {
	clearEnv(t)
	t.Setenv("AGENCY_APP_ENV", "production")
	t.Setenv("AGENCY_TELEMETRY_SAMPLING_RATIO", "2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.password is required in production")
	assert.Contains(t, err.Error(), "sslmode cannot be 'disable'")
	assert.Contains(t, err.Error(), "sampling_ratio")
}

func TestFromViper_ExplicitZeroSampling(t *testing.T) {
	v := viper.New()
	v.Set("telemetry.sampling_ratio", 0.0)

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Zero(t, cfg.Telemetry.SamplingRatio)
	assert.True(t, cfg.Telemetry.MetricsEnabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
