package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestSettingsLoader_MissingFileUsesDefaults(t *testing.T) {
	s, err := NewSettingsLoader(filepath.Join(t.TempDir(), "nope.yaml")).
		WithDotEnv(false).
		WithEnv(noEnv).
		Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPTimeout, s.HTTPTimeout)
	assert.Equal(t, DefaultBackoff, s.Backoff)
	assert.Equal(t, DefaultRelays, s.Relays)
	assert.Equal(t, DefaultListenAddr, s.ListenAddr)
	assert.Empty(t, s.Client)
}

func TestSettingsLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	yml := `
http_timeout: 3s
backoff: 250ms
relays:
  - https://relay.one/?u={url}
client: android/arm64
download_dir: /tmp/img
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0600))

	s, err := NewSettingsLoader(path).WithDotEnv(false).WithEnv(noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, s.HTTPTimeout)
	assert.Equal(t, 250*time.Millisecond, s.Backoff)
	assert.Equal(t, []string{"https://relay.one/?u={url}"}, s.Relays)
	assert.Equal(t, "android/arm64", s.Client)
	assert.Equal(t, "/tmp/img", s.DownloadDir)
	assert.Equal(t, DefaultListenAddr, s.ListenAddr, "unset keys keep defaults")
}

func TestSettingsLoader_EnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvRelays:     " https://a.example/?url= , ,https://b.example/?url=",
		EnvClient:     "ios/arm64",
		EnvListenAddr: "127.0.0.1:9999",
	}
	s, err := NewSettingsLoader(filepath.Join(t.TempDir(), "nope.yaml")).
		WithDotEnv(false).
		WithEnv(func(k string) string { return env[k] }).
		Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example/?url=", "https://b.example/?url="}, s.Relays)
	assert.Equal(t, "ios/arm64", s.Client)
	assert.Equal(t, "127.0.0.1:9999", s.ListenAddr)
}

func TestSettingsLoader_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"Bad YAML", "relays: [unterminated"},
		{"Zero Timeout", "http_timeout: 0s"},
		{"Negative Backoff", "backoff: -1s"},
		{"Relay Not URL", "relays: [ftp://nope]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yml), 0600))

			_, err := NewSettingsLoader(path).WithDotEnv(false).WithEnv(noEnv).Load()
			assert.Error(t, err)
		})
	}
}
