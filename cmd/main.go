package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"breathe/internal/clock"
	"breathe/internal/core/breath"
	"breathe/internal/core/model"
	"breathe/internal/core/session"
	"breathe/internal/haptic"
	"breathe/internal/logging"
	"breathe/internal/platform"
	"breathe/internal/storage"
	"breathe/internal/ui/term"
	"breathe/internal/ui/tray"
	"breathe/internal/ui/view"
	"breathe/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	appName = "Breathe"
	appID   = "com.breathe.app"
)

type options struct {
	configPath string
	minutes    int
	headless   bool
	verbose    bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "Guided 4-7-8 breathing meditation timer",
		Long: `Breathe runs a timed meditation session that guides you through
inhale (4s), hold (7s) and exhale (8s) phases with on-screen prompts and
haptic pulses.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Settings file (default: user config dir)")
	cmd.Flags().IntVarP(&opts.minutes, "minutes", "m", 0, "Session length in minutes (default from settings)")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Run one session in the terminal instead of the window")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	settings, settingsErr := loadSettings(opts.configPath)

	level := settings.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	if settingsErr != nil {
		logger.Warn("using default settings", zap.Error(settingsErr))
	}

	minutes := settings.DefaultMinutes
	if cmd.Flags().Changed("minutes") {
		minutes = opts.minutes
	}

	if opts.headless {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return term.Run(ctx, term.Options{
			Minutes: minutes,
			Out:     cmd.OutOrStdout(),
			Logger:  logger,
		})
	}

	if minutes < 1 {
		return fmt.Errorf("%w: %d", session.ErrInvalidDuration, minutes)
	}
	return runGUI(settings, minutes, logger)
}

func loadSettings(configPath string) (model.Settings, error) {
	if configPath != "" {
		return storage.LoadSettingsFile(configPath)
	}
	return storage.LoadSettings(appName)
}

func runGUI(settings model.Settings, minutes int, logger *zap.Logger) error {
	guard, err := platform.AcquireSingleInstance(appID)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	idleIcon := resources.MustIcon("breathe.svg")
	activeIcon := resources.MustIcon("breathe_active.svg")
	fyneApp.SetIcon(idleIcon)

	clk := clock.NewReal(fyne.Do)

	var controller *session.Controller
	window := view.New(fyneApp, view.Config{
		Fullscreen:     settings.Fullscreen,
		PulseIndicator: settings.PulseIndicator && settings.Haptics,
	}, view.Callbacks{
		OnAddMinute: func() {
			controller.AddMinute()
		},
		OnStart: func() {
			startSession(controller, logger)
		},
		OnStop: func() {
			controller.Finish()
		},
		OnRestart: func() {
			controller.Reset()
		},
	})

	var haptics haptic.Dispatcher = haptic.Nop{}
	if settings.Haptics {
		haptics = haptic.NewPlayer(func(on bool) {
			fyne.Do(func() {
				window.SetPulse(on)
			})
		}, logger)
	}
	scheduler := breath.NewScheduler(clk, window, haptics, logger)

	views := session.MultiView{window}
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow: window.Show,
			OnStart: func() {
				window.Show()
				startSession(controller, logger)
			},
			OnStop: func() {
				controller.Finish()
			},
			OnQuit: func() {
				controller.Reset()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(idleIcon)
		views = append(views, trayManager, trayIconView{app: desktopApp, idle: idleIcon, active: activeIcon})
		window.Window().SetCloseIntercept(window.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	controller = session.NewController(clk, views, scheduler, logger, minutes)
	views.SetDuration(controller.Duration())

	logger.Info("breathe ready", zap.Int("minutes", controller.Duration()), zap.Bool("haptics", settings.Haptics))
	window.Show()
	fyneApp.Run()
	return nil
}

func startSession(controller *session.Controller, logger *zap.Logger) {
	if err := controller.StartSelected(); err != nil {
		if errors.Is(err, session.ErrAlreadyRunning) {
			logger.Debug("start ignored", zap.Error(err))
			return
		}
		logger.Warn("start session", zap.Error(err))
	}
}

type trayIconSetter interface {
	SetSystemTrayIcon(icon fyne.Resource)
}

// trayIconView swaps the tray icon while a session runs.
type trayIconView struct {
	app    trayIconSetter
	idle   fyne.Resource
	active fyne.Resource
}

func (icons trayIconView) ShowScreen(screen session.Screen) {
	if screen == session.ScreenMeditation {
		icons.app.SetSystemTrayIcon(icons.active)
		return
	}
	icons.app.SetSystemTrayIcon(icons.idle)
}

func (trayIconView) SetCountdown(string) {}

func (trayIconView) SetDuration(int) {}
