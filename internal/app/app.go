package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/pixelflip/scanboard/internal/command"
	"github.com/pixelflip/scanboard/internal/config"
	"github.com/pixelflip/scanboard/internal/logging"
	"github.com/pixelflip/scanboard/internal/prefs"
	"github.com/pixelflip/scanboard/internal/scanner"
	"github.com/pixelflip/scanboard/internal/settings"
	"github.com/pixelflip/scanboard/internal/state"
	"github.com/pixelflip/scanboard/internal/ui"
)

// Options configure the scanboard application.
type Options struct {
	ConfigPath  string
	EnvFile     string
	Environment string
	APIURL      string
	PrefsPath   string // empty uses default ~/.config/scanboard/prefs.toml
}

// Run boots the dashboard and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, config.Overrides{
		Environment: opts.Environment,
		APIURL:      opts.APIURL,
		EnvFile:     opts.EnvFile,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	client, err := scanner.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init scanner client: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"api_url":     client.BaseURL(),
	}).Info("scanboard starting")

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath
	}
	prefsPath, err = config.ExpandPath(prefsPath)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	userPrefs := prefs.Load(prefsPath)

	settingsStore := settings.New(client, settings.DefaultSettings(),
		settings.WithLogger(logger),
		settings.WithContext(ctx),
	)
	// Let in-flight saves finish before the process exits.
	defer settingsStore.Wait()

	statusStore := state.NewStore(scanner.Status{State: scanner.StateStopped})
	poller := NewPoller(client, statusStore, logger, 0)
	poller.Start(ctx)
	defer poller.Stop()

	err = ui.Run(ui.Options{
		Context:     ctx,
		Settings:    settingsStore,
		Status:      statusStore,
		Commands:    command.New(client, logger),
		Logger:      logger,
		ThemeName:   userPrefs.Theme,
		Panel:       userPrefs.Panel,
		PrefsPath:   prefsPath,
		LogFile:     cfg.LogFile,
		APIURL:      client.BaseURL(),
		Environment: cfg.Environment,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	logger.Info("scanboard stopped")
	return err
}
