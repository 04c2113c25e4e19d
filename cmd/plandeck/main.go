package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/plandeck/plandeck/internal/app"
	"github.com/plandeck/plandeck/internal/config"
	"github.com/plandeck/plandeck/internal/logging"
	"github.com/plandeck/plandeck/internal/notify"
	"github.com/plandeck/plandeck/internal/scheduler"
	"github.com/plandeck/plandeck/internal/storage"
	"github.com/plandeck/plandeck/internal/update"
	"github.com/plandeck/plandeck/internal/views"
)

func main() {
	configDir := flag.String("config", "", "config directory (default: user config dir)")
	flag.Parse()

	if err := run(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "plandeck failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLogger, err := logging.New(cfg.Logger.Level, cfg.LogPath())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLogger()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	kv, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	engine := scheduler.NewEngine(cfg.Scheduler.Buffer)
	engine.Start()
	defer engine.Stop()

	planner := notify.NewPlanner(engine, time.Local)

	ctx := context.Background()
	state, err := app.Load(ctx, kv, planner, noteRenderer(ctx, kv), logger, time.Local)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.Notifications.Desktop {
		notifier = notify.ExecNotifier{}
	}

	logger.Info("starting", zap.String("data_dir", cfg.DataDir), zap.Bool("desktop", cfg.Notifications.Desktop))
	program := tea.NewProgram(update.NewModelWithRuntime(state, engine, notifier, cfg.Notifications.Desktop))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// noteRenderer binds the markdown rendering style to the persisted
// theme preference at startup.
func noteRenderer(ctx context.Context, kv *storage.KV) app.NoteRenderer {
	style := "dark"
	var prefs struct {
		Theme string `json:"theme"`
	}
	if ok, err := kv.Load(ctx, storage.KeyPreferences, &prefs); err == nil && ok && prefs.Theme == "light" {
		style = "light"
	}
	return func(source string) string {
		return views.RenderMarkdown(source, style)
	}
}
