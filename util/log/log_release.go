//go:build release

package log

import (
	"log"
	"os"
	"path/filepath"

	"github.com/dixieflatline76/Nekofetch/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Release builds log to a rotating file instead of stderr.
func init() {
	debugEnabled = os.Getenv(config.EnvDebug) != ""

	logDir, err := config.LogDir()
	if err != nil {
		log.Fatalf("Failed to resolve log directory: %v", err)
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, config.LogFileName),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}
