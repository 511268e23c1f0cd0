package main

import (
	"codeberg.org/miketth/langflash/pkg/langflash"
	"codeberg.org/miketth/langflash/pkg/overlay"
	"codeberg.org/miketth/langflash/pkg/tray"
	"errors"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"time"
)

var ErrInvalidFlag = errors.New("invalid flag")

type config struct {
	pollInterval time.Duration
	overlayDrain time.Duration
	trayDrain    time.Duration
	debug        bool
	logFile      string
	noOverlay    bool
	noTray       bool
}

func parseConfig(args []string, output io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("langflash", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.DurationVar(&cfg.pollInterval, "poll-interval", langflash.DefaultPollInterval, "how often to check the foreground layout")
	fs.DurationVar(&cfg.overlayDrain, "overlay-drain", overlay.DefaultOptions().DrainInterval, "how often the overlay picks up changes")
	fs.DurationVar(&cfg.trayDrain, "tray-drain", tray.DefaultDrainInterval, "how often the tray icon picks up changes")
	fs.BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	fs.StringVar(&cfg.logFile, "log-file", "", "log file path (default under the XDG state directory)")
	fs.BoolVar(&cfg.noOverlay, "no-overlay", false, "do not flash the layout on screen")
	fs.BoolVar(&cfg.noTray, "no-tray", false, "do not show a tray icon")

	if err := fs.Parse(args); err != nil {
		return config{}, fmt.Errorf("parse flags: %w", err)
	}

	for name, d := range map[string]time.Duration{
		"poll-interval": cfg.pollInterval,
		"overlay-drain": cfg.overlayDrain,
		"tray-drain":    cfg.trayDrain,
	} {
		if d <= 0 {
			return config{}, fmt.Errorf("%w: -%s must be positive, got %s", ErrInvalidFlag, name, d)
		}
	}

	return cfg, nil
}

func defaultLogFile() (string, error) {
	path, err := xdg.StateFile("langflash/langflash.log")
	if err != nil {
		return "", fmt.Errorf("resolve state dir: %w", err)
	}
	return path, nil
}

func newLogger(debug bool, logFile string) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout", logFile}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
