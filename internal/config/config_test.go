package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("значения из файла и значения по умолчанию", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 9090

[database]
user = "ds"
dbname = "scheduling"

[scheduling]
conflict_lookback_hours = 12
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, "scheduling", cfg.Database.DBName)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "Europe/Chisinau", cfg.Scheduling.BusinessTimezone)
		assert.Equal(t, 12*time.Hour, cfg.Scheduling.Lookback())
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("переменные окружения перекрывают файл", func(t *testing.T) {
		path := writeConfig(t, `
[database]
host = "db.internal"
dbname = "scheduling"
`)
		t.Setenv("DB_HOST", "override")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("HTTP_PORT", "8181")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "override", cfg.Database.Host)
		assert.Equal(t, "secret", cfg.Database.Password)
		assert.Equal(t, 8181, cfg.Server.HTTPPort)
		assert.Contains(t, cfg.Database.DSN(), "host=override")
	})

	t.Run("неизвестный часовой пояс", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = "scheduling"

[scheduling]
business_timezone = "Mars/Olympus"
`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("файл отсутствует", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.ErrorIs(t, err, ErrReadConfig)
	})
}
