package config

import (
	"os"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", s.HTTPAddr)
	assert.Equal(t, "sqlite", s.Storage)
	assert.Equal(t, 2*time.Second, s.WriteTimeout)
	assert.Empty(t, s.KafkaBroker)
	assert.Equal(t, "order-events", s.OrdersTopic)
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("POS_STORAGE", "redis")
	t.Setenv("POS_REDIS_PORT", "6380")
	t.Setenv("POS_WRITE_TIMEOUT", "500ms")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", s.Storage)
	assert.Equal(t, "6380", s.RedisPort)
	assert.Equal(t, 500*time.Millisecond, s.WriteTimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(".env", []byte("POS_SQLITE_PATH=/tmp/veneza.db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("POS_SQLITE_PATH") })

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/veneza.db", s.SQLitePath)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("POS_STORAGE", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantErr   bool
		wantLevel log.Level
	}{
		{name: "text debug", level: "debug", format: "text", wantLevel: log.DebugLevel},
		{name: "json warn", level: "warn", format: "json", wantLevel: log.WarnLevel},
		{name: "bad level", level: "loud", format: "text", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			logger, err := NewLogger(testCase.level, testCase.format)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantLevel, logger.GetLevel())
		})
	}
}

func TestSettings_PostgresDSN(t *testing.T) {
	s := Settings{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "pizzaria"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=pizzaria sslmode=disable", s.PostgresDSN())
}
