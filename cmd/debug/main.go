package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/osse101/farmstead/internal/config"
	"github.com/osse101/farmstead/internal/storage"
)

// debug lists the stored save slots, or dumps one slot's snapshot as JSON
// when -slot is given
func main() {
	slot := flag.String("slot", "", "save slot to dump")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	store, closeStore, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.StorageDriver,
		Dir:         cfg.SaveDir,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.GetDBConnString(),
		MaxConns:    2,
		MaxIdle:     cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()

	if *slot != "" {
		snap, err := store.Load(ctx, *slot)
		if err != nil {
			log.Fatalf("Failed to load slot %s: %v", *slot, err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			log.Fatalf("Failed to encode snapshot: %v", err)
		}
		return
	}

	records, err := store.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list saves: %v", err)
	}
	fmt.Printf("--- Saves (%s) ---\n", cfg.StorageDriver)
	for _, r := range records {
		game := "-"
		if r.Snapshot != nil {
			game = r.Snapshot.Timestamp.String()
		}
		fmt.Printf("%-24s %-16s saved %s\n", r.Slot, game, r.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}
