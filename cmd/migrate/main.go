// ABOUTME: Migration utility for moving hub data between storage backends.
// ABOUTME: Copies every hub key from a SQLite file into another file or Charm, with dry-run and backup.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/harperreed/lifehub/charm"
	"github.com/harperreed/lifehub/db"
	"github.com/harperreed/lifehub/store"
)

func main() {
	from := flag.String("from", "", "Source SQLite database (required)")
	to := flag.String("to", "", "Destination: a SQLite path, or \"charm\" for Charm Cloud (required)")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Back up a SQLite destination before writing")
	flag.Parse()

	if *from == "" || *to == "" {
		log.Fatal("Error: -from and -to flags are required")
	}

	if err := migrate(*from, *to, *dryRun, *backup); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}

func migrate(from, to string, dryRun, createBackup bool) error {
	if _, err := os.Stat(from); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", from)
	}

	src, err := db.OpenKV(from)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, closer, err := openDestination(to, dryRun, createBackup)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	res, err := store.Copy(dst, src, dryRun)
	if err != nil {
		return err
	}

	prefix := "Copied "
	if dryRun {
		prefix = "[DRY RUN] Would copy "
	}
	for _, key := range res.Copied {
		log.Printf("%s%s", prefix, key)
	}
	if len(res.Missing) > 0 {
		log.Printf("Skipped %d key(s) not present in source: %v", len(res.Missing), res.Missing)
	}
	return nil
}

func openDestination(to string, dryRun, createBackup bool) (store.KV, io.Closer, error) {
	if to == "charm" {
		cfg, err := charm.LoadConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load charm config: %w", err)
		}
		client, err := charm.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Destination: Charm Cloud (%s)", cfg.Host)
		return client, client, nil
	}

	if createBackup && !dryRun {
		if input, err := os.ReadFile(to); err == nil {
			backupPath := fmt.Sprintf("%s.backup.%s", to, time.Now().Format("20060102-150405"))
			log.Printf("Creating backup: %s", backupPath)
			if err := os.WriteFile(backupPath, input, 0600); err != nil {
				return nil, nil, fmt.Errorf("failed to create backup: %w", err)
			}
			log.Printf("Backup created successfully")
		}
	}

	kv, err := db.OpenKV(to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open destination: %w", err)
	}
	log.Printf("Destination: %s", to)
	return kv, kv, nil
}
