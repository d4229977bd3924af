package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Release-build logging controls, read from the environment at startup.
const (
	EnvLogDir = "NEKOFETCH_LOG_DIR" // overrides the log directory
	EnvDebug  = "NEKOFETCH_DEBUG"   // any non-empty value keeps debug lines in release builds
)

// LogFileName is the name of the rotating log file.
const LogFileName = AppName + LogExt

// LogDir returns the directory release builds write LogFileName to.
func LogDir() (string, error) {
	return logDir(os.Getenv, runtime.GOOS, os.UserCacheDir, os.UserHomeDir)
}

func logDir(getenv func(string) string, goos string, cacheDir, homeDir func() (string, error)) (string, error) {
	if dir := getenv(EnvLogDir); dir != "" {
		return dir, nil
	}
	if goos == "windows" {
		base, err := cacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user cache directory: %w", err)
		}
		return filepath.Join(base, LogWinSubDir), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, LogSubDir), nil
}
