package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("JWT_SECRET", "0123456789abcdef")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "blogify", cfg.AppName)
	assert.Equal(t, EnvDevelopment, cfg.AppEnv)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost dbname=blog")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://blog.example.com ,")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"http://localhost:3000", "https://blog.example.com"}, cfg.AllowedOrigins())
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("JWT_SECRET", "0123456789abcdef")
		_, err := fromEnv()
		require.Error(t, err)
	})
	t.Run("short secret", func(t *testing.T) {
		t.Setenv("DB_DSN", "file::memory:")
		t.Setenv("JWT_SECRET", "short")
		_, err := fromEnv()
		require.Error(t, err)
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DSN", "file::memory:")
		t.Setenv("JWT_SECRET", "0123456789abcdef")
		t.Setenv("DB_DRIVER", "oracle")
		_, err := fromEnv()
		require.Error(t, err)
	})
}

func TestOpenDB_SQLiteMigrates(t *testing.T) {
	db, err := OpenDB(DriverSQLite, ":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	require.NoError(t, Migrate(db))
	for _, table := range []string{"users", "posts", "comments", "likes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	_, err := OpenDB("oracle", "x", false)
	require.Error(t, err)
}
