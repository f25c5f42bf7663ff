package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"karolbroda.com/lyricsync/internal/config"
	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/player"
	"karolbroda.com/lyricsync/internal/terminal"
	"karolbroda.com/lyricsync/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "start the interactive lyrics viewer",
	Long:  `starts the terminal lyrics viewer with line-by-line highlighting and click-to-seek.`,
	RunE:  runViewer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// loadConfig reads the environment, then applies any flags set on the
// command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	flags := cmd.Flags()

	if flags.Changed("source") {
		if source != config.SourceFile && source != config.SourceMPRIS {
			return nil, fmt.Errorf("unknown source %q (want %s or %s)", source, config.SourceFile, config.SourceMPRIS)
		}
		cfg.Source = source
	}
	if mprisService != "" {
		cfg.MprisService = mprisService
	}
	if audioFile != "" {
		cfg.AudioFile = audioFile
	}
	if flags.Changed("sync-offset") {
		cfg.SyncOffset = syncOffset
	}
	if flags.Changed("hide-header") {
		cfg.HideHeader = hideHeader
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}

	return cfg, nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		cancel()
		terminal.Reset()
		os.Exit(0)
	}()

	defer terminal.Reset()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Sync()

	logger = logger.With(zap.String("session", uuid.NewString()))
	logger.Info("starting viewer",
		zap.String("source", cfg.Source),
		zap.Float64("sync_offset", cfg.SyncOffset),
	)

	device, closeDevice, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer closeDevice()

	// a device that fails to start still drives the viewer; the failure
	// arrives as an error event
	err = device.Start()
	if err != nil {
		logger.Warn("playback source unavailable", zap.Error(err))
	}

	model, err := ui.NewModel(ui.ModelConfig{
		Device:     device,
		Lyrics:     lyrics.Builtin(),
		Logger:     logger,
		SyncOffset: cfg.SyncOffset,
		HideHeader: cfg.HideHeader,
	})
	if err != nil {
		return fmt.Errorf("failed to build viewer: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-ctx.Done()
		device.Stop()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running bubble tea: %w", err)
	}

	logger.Info("viewer stopped")
	return nil
}

func openDevice(cfg *config.Config) (player.Device, func(), error) {
	switch cfg.Source {
	case config.SourceMPRIS:
		bus, err := dbus.ConnectSessionBus()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to session bus: %w", err)
		}

		service, err := player.NewService(bus, cfg.MprisService)
		if err != nil {
			bus.Close()
			return nil, nil, fmt.Errorf("failed to create player service: %w", err)
		}

		return service, func() {
			service.Stop()
			bus.Close()
		}, nil

	default:
		filePlayer, err := player.NewFilePlayer(cfg.AudioFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file player: %w", err)
		}
		return filePlayer, filePlayer.Stop, nil
	}
}
