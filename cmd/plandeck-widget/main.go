package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/plandeck/plandeck/internal/config"
	"github.com/plandeck/plandeck/internal/storage"
	"github.com/plandeck/plandeck/internal/widget"
)

func main() {
	configDir := flag.String("config", "", "config directory (default: user config dir)")
	asJSON := flag.Bool("json", false, "emit the snapshot as JSON")
	limit := flag.Int("limit", 5, "max items per list, 0 for all")
	flag.Parse()

	if err := run(*configDir, *asJSON, *limit); err != nil {
		fmt.Fprintf(os.Stderr, "plandeck-widget failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string, asJSON bool, limit int) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	kv, err := storage.OpenReadOnly(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := widget.Take(ctx, kv, time.Local, limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	fmt.Println(snap.Render())
	return nil
}
