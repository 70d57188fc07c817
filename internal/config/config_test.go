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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("RTC_API_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "")

	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "memory"

[mentor_profile]
url = "http://mentor-profile:8080"

[booking]
timezone = "Asia/Seoul"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.RTC.APISecret)
	assert.Equal(t, 3, cfg.Live.DeliveryAttempts)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("RTC_API_SECRET", "")

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown driver",
			content: `
[database]
driver = "mysql"
[mentor_profile]
url = "http://x"
[rtc]
api_secret = "s"
`,
		},
		{
			name: "missing rtc secret",
			content: `
[database]
driver = "memory"
[mentor_profile]
url = "http://x"
`,
		},
		{
			name: "events without nats url",
			content: `
[database]
driver = "memory"
[mentor_profile]
url = "http://x"
[rtc]
api_secret = "s"
[events]
enabled = true
`,
		},
		{
			name: "bad timezone",
			content: `
[database]
driver = "memory"
[mentor_profile]
url = "http://x"
[rtc]
api_secret = "s"
[booking]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "zero sweep interval",
			content: `
[database]
driver = "memory"
[mentor_profile]
url = "http://x"
[rtc]
api_secret = "s"
[live]
sweep_interval = 0
`,
		},
		{
			name: "negative sweep interval",
			content: `
[database]
driver = "memory"
[mentor_profile]
url = "http://x"
[rtc]
api_secret = "s"
[live]
sweep_interval = -5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NATS_URL", "")
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "mentoring", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=mentoring sslmode=disable", c.DSN())
}
