package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvRelays      = "NEKOFETCH_RELAYS" // comma separated relay endpoints
	EnvClient      = "NEKOFETCH_CLIENT" // client descriptor, e.g. "android/arm64"
	EnvDownloadDir = "NEKOFETCH_DOWNLOAD_DIR"
	EnvListenAddr  = "NEKOFETCH_LISTEN_ADDR"
)

// Default values
const (
	DefaultHTTPTimeout = 15 * time.Second
	DefaultBackoff     = 500 * time.Millisecond
	DefaultListenAddr  = "127.0.0.1:49453"
)

// DefaultRelays are the public CORS relays tried in order.
// An endpoint either contains a "{url}" placeholder or has the escaped target appended.
var DefaultRelays = []string{
	"https://api.allorigins.win/raw?url=",
	"https://corsproxy.io/?url=",
}

// Settings holds the tunables of the fetch client
type Settings struct {
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	Backoff     time.Duration `yaml:"backoff"`
	Relays      []string      `yaml:"relays"`
	Client      string        `yaml:"client"` // client descriptor override; empty means detect
	DownloadDir string        `yaml:"download_dir"`
	ListenAddr  string        `yaml:"listen_addr"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout: DefaultHTTPTimeout,
		Backoff:     DefaultBackoff,
		Relays:      append([]string(nil), DefaultRelays...),
		DownloadDir: filepath.Join(WorkingDir(), "images"),
		ListenAddr:  DefaultListenAddr,
	}
}

// WorkingDir returns the per-user directory holding settings, preferences and downloads.
func WorkingDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Error getting user home directory, using current directory: %v", err)
		return "." + strings.ToLower(AppName)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName))
}

// SettingsPath returns the default settings file location.
func SettingsPath() string {
	return filepath.Join(WorkingDir(), SettingsFileName)
}

// PreferencesPath returns the default preferences file location.
func PreferencesPath() string {
	return filepath.Join(WorkingDir(), PreferencesFileName)
}

// SettingsLoader reads Settings from a YAML file and the environment.
type SettingsLoader struct {
	path      string
	useDotEnv bool
	getenv    func(string) string
}

// NewSettingsLoader creates a loader for the given settings file.
func NewSettingsLoader(path string) *SettingsLoader {
	return &SettingsLoader{path: path, useDotEnv: true, getenv: os.Getenv}
}

// WithDotEnv toggles loading variables from a .env file before reading the environment.
func (l *SettingsLoader) WithDotEnv(enabled bool) *SettingsLoader {
	l.useDotEnv = enabled
	return l
}

// WithEnv overrides the environment lookup (useful for tests).
func (l *SettingsLoader) WithEnv(getenv func(string) string) *SettingsLoader {
	if getenv != nil {
		l.getenv = getenv
	}
	return l
}

// Load returns the settings. A missing file yields the defaults.
func (l *SettingsLoader) Load() (Settings, error) {
	s := DefaultSettings()

	raw, err := os.ReadFile(l.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return s, fmt.Errorf("failed to read settings: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("failed to parse settings %s: %w", l.path, err)
		}
	}

	if l.useDotEnv {
		// A missing .env is normal.
		_ = godotenv.Load()
	}
	l.applyEnv(&s)

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (l *SettingsLoader) applyEnv(s *Settings) {
	if v := l.getenv(EnvRelays); v != "" {
		var relays []string
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				relays = append(relays, r)
			}
		}
		s.Relays = relays
	}
	if v := l.getenv(EnvClient); v != "" {
		s.Client = v
	}
	if v := l.getenv(EnvDownloadDir); v != "" {
		s.DownloadDir = v
	}
	if v := l.getenv(EnvListenAddr); v != "" {
		s.ListenAddr = v
	}
}

// Validate checks the settings for values the client cannot work with.
func (s Settings) Validate() error {
	if s.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", s.HTTPTimeout)
	}
	if s.Backoff < 0 {
		return fmt.Errorf("backoff must not be negative, got %s", s.Backoff)
	}
	for _, r := range s.Relays {
		if !strings.HasPrefix(r, "https://") && !strings.HasPrefix(r, "http://") {
			return fmt.Errorf("relay endpoint %q must be an http(s) URL", r)
		}
	}
	return nil
}
