//go:build windows

package main

import (
	"codeberg.org/miketth/langflash/pkg/langflash"
	"codeberg.org/miketth/langflash/pkg/layoutqueue"
	"codeberg.org/miketth/langflash/pkg/layouts"
	"codeberg.org/miketth/langflash/pkg/overlay"
	"codeberg.org/miketth/langflash/pkg/tray"
	"codeberg.org/miketth/langflash/pkg/win32"
	"context"
	"errors"
	"fmt"
	"golang.org/x/sync/errgroup"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}

	if cfg.logFile == "" {
		cfg.logFile, err = defaultLogFile()
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
	}

	logger, err := newLogger(cfg.debug, cfg.logFile)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	bus := layoutqueue.New()
	defer bus.Close()
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// tray Quit cancels everything, same as a signal
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	registry := layouts.NewRegistry(win32.LocaleName)
	prober := langflash.NewLayoutProber(win32.Desktop{}, registry)
	monitor := langflash.NewMonitor(prober, bus, cfg.pollInterval, logger.Named("monitor"))

	g, ctx := errgroup.WithContext(ctx)

	if !cfg.noOverlay {
		inbox, err := bus.Subscribe("overlay", layoutqueue.DefaultCapacity)
		if err != nil {
			return fmt.Errorf("subscribe overlay: %w", err)
		}

		opts := overlay.DefaultOptions()
		opts.DrainInterval = cfg.overlayDrain

		g.Go(func() error {
			if err := overlay.Run(ctx, inbox, opts, logger.Named("overlay")); err != nil {
				return fmt.Errorf("overlay: %w", err)
			}
			return nil
		})
	}

	if !cfg.noTray {
		inbox, err := bus.Subscribe("tray", layoutqueue.DefaultCapacity)
		if err != nil {
			return fmt.Errorf("subscribe tray: %w", err)
		}

		g.Go(func() error {
			if err := tray.Run(ctx, inbox, cfg.trayDrain, quit, logger.Named("tray")); err != nil {
				return fmt.Errorf("tray: %w", err)
			}
			return nil
		})
	}

	// sinks are subscribed, so the initial layout reaches them
	g.Go(func() error {
		if err := monitor.Run(ctx); err != nil {
			return fmt.Errorf("monitor: %w", err)
		}
		return nil
	})

	logger.Infow("started langflash",
		"poll", cfg.pollInterval,
		"overlay", !cfg.noOverlay,
		"tray", !cfg.noTray,
		"logFile", cfg.logFile,
	)

	err = g.Wait()
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutting down")
		return nil
	case err != nil:
		return err
	}

	return nil
}
