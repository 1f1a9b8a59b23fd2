// Package main provides a CLI that generates a randomizer seed against a
// catalog and prints its spoiler log, optionally saving or loading it through
// the configured save-state store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/unlock-randomizer/randomizer-common/pkg/cache"
	"github.com/unlock-randomizer/randomizer-common/pkg/catalog"
	"github.com/unlock-randomizer/randomizer-common/pkg/config"
	"github.com/unlock-randomizer/randomizer-common/pkg/db"
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
	"github.com/unlock-randomizer/randomizer-common/pkg/notifier"
	"github.com/unlock-randomizer/randomizer-common/pkg/randomizer"
	"github.com/unlock-randomizer/randomizer-common/pkg/repository"
	"github.com/unlock-randomizer/randomizer-common/pkg/tracker"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var asJSON, save, load, list bool
	flag.StringVar(&settings.Seed, "seed", settings.Seed, "seed as XXXX-XXXX (default: random)")
	flag.StringVar((*string)(&settings.Mode), "mode", string(settings.Mode), "grant mode (casual, hardcore)")
	flag.StringVar(&settings.CatalogPath, "catalog", settings.CatalogPath, "catalog file, JSON or YAML (default: built-in reference)")
	flag.StringVar(&settings.SaveSlot, "slot", settings.SaveSlot, "save slot for -save and -load")
	flag.IntVar(&settings.MaxAttempts, "max-attempts", settings.MaxAttempts, "give up after this many attempts (0 = never)")
	flag.BoolVar(&asJSON, "json", false, "print the spoiler log as JSON")
	flag.BoolVar(&save, "save", false, "save the generated seed to the configured store")
	flag.BoolVar(&load, "load", false, "print the seed saved in -slot instead of generating one")
	flag.BoolVar(&list, "list", false, "list occupied save slots")
	flag.Parse()

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, settings, logger, runOptions{asJSON: asJSON, save: save, load: load, list: list}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runOptions struct {
	asJSON bool
	save   bool
	load   bool
	list   bool
}

func run(ctx context.Context, settings config.Settings, logger *slog.Logger, opts runOptions) error {
	needStore := opts.save || opts.load || opts.list
	var store repository.StateRepository
	if needStore {
		s, closeStore, err := openStore(ctx, settings)
		if err != nil {
			return err
		}
		defer closeStore()
		store = s
	}

	if opts.list {
		slots, err := store.ListSlots(ctx)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			fmt.Println(slot)
		}
		return nil
	}

	c, err := loadCatalog(settings.CatalogPath, logger)
	if err != nil {
		return err
	}
	catalogCache, err := cache.NewInMemoryCatalogCache(c, settings.CatalogPath, logger)
	if err != nil {
		return err
	}
	r, err := randomizer.NewRandomizer(catalogCache, notifier.NewLogUnlockNotifier(logger), logger,
		randomizer.WithMaxAttempts(settings.MaxAttempts))
	if err != nil {
		return err
	}

	if opts.load {
		found, err := r.Load(ctx, store, settings.SaveSlot)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("slot %q is empty", settings.SaveSlot)
		}
	} else {
		seed, err := settings.ParsedSeed()
		if err != nil {
			return err
		}
		if _, err := r.StartRandomizer(seed, settings.Mode); err != nil {
			return err
		}
		if err := r.GenerateUntilBeatable(ctx); err != nil {
			return err
		}
		if opts.save {
			if err := r.Save(ctx, store, settings.SaveSlot); err != nil {
				return err
			}
		}
	}

	return printSpoilerLog(r.Tracker(), opts.asJSON)
}

func loadCatalog(path string, logger *slog.Logger) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Reference()
	}
	return catalog.NewCatalogLoader(path, logger).LoadCatalog()
}

// openStore opens and migrates the configured save-state backend.
func openStore(ctx context.Context, settings config.Settings) (repository.StateRepository, func(), error) {
	switch settings.Store {
	case config.StoreSQLite:
		conn, err := db.OpenSQLite(settings.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewSQLiteStateRepository(conn)
		if err := repo.Migrate(ctx); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return repo, func() { _ = conn.Close() }, nil
	case config.StorePostgres:
		conn, err := db.Connect(db.NewConfigFromEnv())
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresStateRepository(conn)
		if err := repo.Migrate(ctx); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return repo, func() { _ = conn.Close() }, nil
	default:
		return repository.NewInMemoryStateRepository(), func() {}, nil
	}
}

func printSpoilerLog(t *tracker.Tracker, asJSON bool) error {
	seed, _ := t.Seed()
	mode, _ := t.Mode()
	entries := t.SpoilerLog()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Seed    string                 `json:"seed"`
			Mode    domain.Mode            `json:"mode"`
			RunID   string                 `json:"run_id"`
			Entries []tracker.SpoilerEntry `json:"entries"`
		}{seed.String(), mode, t.RunID(), entries})
	}

	fmt.Printf("Seed: %s  Mode: %s  Run: %s\n\n", seed, mode, t.RunID())
	return tracker.WriteSpoilerLog(os.Stdout, entries)
}
