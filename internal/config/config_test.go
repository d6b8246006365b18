package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
api:
  environment: test
  port: "8080"
  base_url: localhost:8080
  jwt_signing_key: 0123456789abcdef
gin:
  mode: test
postgres:
  host: localhost
  port: "5432"
  user: hubicito
  db: hubicito
storage:
  driver: local
  local_root: /tmp/hubicito
  public_base_url: http://localhost:8080/files
mail:
  driver: console
  from_name: Hubicito
  from_address: no-reply@hubicito.local
forms:
  idle_ttl: 30m
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "info", conf.API.LogLevel)
	assert.Equal(t, 24*time.Hour, conf.API.JWTExpiration)
	assert.Equal(t, "presentations", conf.Storage.Bucket)
	assert.Equal(t, int64(20<<20), conf.Storage.MaxUploadSize)
	assert.Equal(t, 30*time.Minute, conf.Forms.IdleTTL)
	assert.Equal(t, "host=localhost port=5432 user=hubicito password= dbname=hubicito sslmode=disable", conf.Postgres.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HUBICITO_API_PORT", "9090")
	t.Setenv("HUBICITO_API_LOG_LEVEL", "warn")

	conf, err := Load(writeConfig(t, validYAML+"\n"))
	require.NoError(t, err)
	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, "warn", conf.API.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
	}{
		{name: "short signing key", replace: [2]string{"0123456789abcdef", "short"}},
		{name: "unknown storage driver", replace: [2]string{"driver: local", "driver: s3"}},
		{name: "oss without credentials", replace: [2]string{"driver: local", "driver: oss"}},
		{name: "sendgrid without key", replace: [2]string{"driver: console", "driver: sendgrid"}},
		{name: "bad sender", replace: [2]string{"no-reply@hubicito.local", "nobody"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(validYAML, tt.replace[0], tt.replace[1], 1)
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
