// Package main is the entry point for the igtd overlay daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/igt/internal/audio"
	"github.com/jmylchreest/igt/internal/config"
	"github.com/jmylchreest/igt/internal/daemon"
	"github.com/jmylchreest/igt/internal/dbus"
	"github.com/jmylchreest/igt/internal/display"
	"github.com/jmylchreest/igt/internal/host"
	"github.com/jmylchreest/igt/internal/hotkeys"
	"github.com/jmylchreest/igt/internal/input"
	"github.com/jmylchreest/igt/internal/overlay"
	"github.com/jmylchreest/igt/internal/theme"
)

const (
	appID   = "io.github.jmylchreest.igt"
	appName = "igtd"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	verbose := flag.Bool("v", false, "Enable debug logging")
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/igt/igt.toml)")
	flag.Parse()

	if *showVersion {
		fmt.Println("igtd version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	os.Exit(run(*configPath, logger))
}

func run(configPath string, logger *slog.Logger) int {
	logger.Info("starting igtd", "version", version)

	store, err := config.OpenStore(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between the GTK main loop and the signal handler
	var (
		server        *dbus.ControlServer
		themeLoader   *theme.Loader
		chime         *audio.Chime
		grabber       *hotkeys.Grabber
		configWatcher *config.Watcher
		frameSource   glib.SourceHandle
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := func() {
		if frameSource != 0 {
			glib.SourceRemove(frameSource)
			frameSource = 0
		}
		if grabber != nil {
			grabber.Stop()
		}
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		if server != nil {
			_ = server.Stop()
		}
		if chime != nil {
			chime.Close()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		// Stop components in GTK main loop context
		glib.IdleAdd(func() {
			if running.Load() {
				stop()
				app.Release()
				running.Store(false)
			}
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		// Layer-shell windows only exist while a host is attached.
		app.Hold()

		cfg := store.Snapshot()

		themeLoader = theme.NewLoader(config.ThemesDir(), logger)
		if err := themeLoader.Load(cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme, using default", "error", err)
		}
		themeLoader.Apply(nil)

		// Alerts about igtd itself go to the desktop notification daemon.
		var sender daemon.Sender
		if notifier, err := dbus.NewDesktopNotifier(appName); err != nil {
			logger.Warn("desktop notifications unavailable", "error", err)
		} else {
			sender = notifier
		}
		alerts := daemon.NewAlerts(sender, logger)

		themeLoader.SetReloadCallback(func(name string, err error) {
			if err != nil {
				alerts.ThemeError(err)
				return
			}
			alerts.ThemeReloaded(name)
		})
		if err := themeLoader.StartHotReload(ctx); err != nil {
			logger.Warn("failed to start theme hot reload", "error", err)
		}

		kb := cfg.Keybinds
		bindings := input.ParseBindings(kb.Disabled, kb.Toggle, kb.Move, kb.Reset, logger)

		queue := input.NewQueue()
		screen := display.NewScreen(cfg.Display.Monitor, logger)
		substrate := display.NewSubstrate(&app.Application, screen, queue, themeLoader, logger)
		manager := overlay.NewManager(substrate, store, overlay.NewSession(), logger)
		driver := host.NewDriver(manager, store, queue, bindings, logger)

		chime = audio.NewChime(cfg.Notifications, logger)
		chime.SetErrorCallback(alerts.AudioError)
		manager.SetNotifyHook(chime.Notify)

		server = dbus.NewControlServer(queue, driver.Status, logger)
		if err := server.Start(); err != nil {
			logger.Error("failed to start control server", "error", err)
			stop()
			app.Release()
			app.Quit()
			return
		}
		driver.SetSavedCallback(func(x, y float64) {
			if err := server.EmitPositionSaved(x, y); err != nil {
				logger.Warn("failed to emit position saved", "error", err)
			}
		})

		setters := []daemon.BindingsSetter{driver}
		if g, err := hotkeys.NewGrabber(queue, logger); err != nil {
			logger.Warn("global hotkeys unavailable, bind 'igt toggle', 'igt move' and 'igt reset' in the compositor instead", "error", err)
		} else {
			grabber = g
			grabber.SetBindings(bindings)
			setters = append(setters, grabber)
			go grabber.Run()
		}

		reloader := daemon.NewReloader(cfg, chime, themeLoader, alerts, logger, setters...)
		if w, err := config.NewWatcher(store, logger); err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher = w
			configWatcher.SetReloadCallback(func(c *config.Config) {
				glib.IdleAdd(func() { reloader.Apply(c) })
			})
			configWatcher.SetErrorCallback(reloader.Failed)
			if err := configWatcher.Start(); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		interval := cfg.Display.FrameInterval.Duration()
		frameSource = glib.TimeoutAdd(uint(interval.Milliseconds()), func() bool {
			driver.Frame()
			return true
		})

		logger.Info("igtd ready",
			"bus_name", dbus.BusName,
			"keybinds", bindings.Summary(),
			"frame_interval", interval)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if running.Load() {
			stop()
			running.Store(false)
		}
	})

	// Our flags were parsed above; GApplication would reject them.
	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
	}
	return status
}
