package config

import (
	"os"
	"path/filepath"
	"testing"

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
	path := writeConfig(t, `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15
idle_timeout = 60

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "postgres"
dbname = "appointments"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
service_name = "appointment-service"
path = "/metrics"

[jobs]
completion_enabled = true
completion_schedule = "*/10 * * * *"
completion_grace_minutes = 60
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "*/10 * * * *", cfg.Jobs.CompletionSchedule)
	assert.Equal(t, 60, cfg.Jobs.CompletionGraceMinutes)

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=appointments sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing port",
			content: `
[database]
host = "localhost"
dbname = "appointments"
`,
		},
		{
			name: "missing database host",
			content: `
[server]
http_port = 8080

[database]
dbname = "appointments"
`,
		},
		{
			name: "sweeper enabled without schedule",
			content: `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "appointments"

[jobs]
completion_enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
