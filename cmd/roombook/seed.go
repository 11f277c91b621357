// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roombook/internal/registry"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the YAML room inventory into the registry",
	Long: `Seed upserts every room from the inventory file into the SQLite registry.
Seeding is idempotent: rerunning with the same file updates rooms in place.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if path, _ := cmd.Flags().GetString("inventory"); path != "" {
		cfg.Registry.InventoryFile = path
	}

	store, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Seed(context.Background(), cfg.Registry.InventoryFile)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded registry from %s: %d added, %d updated\n",
		cfg.Registry.InventoryFile, summary.Added, summary.Updated)
	return nil
}

func init() {
	seedCmd.Flags().String("inventory", "", "inventory YAML file (default from config)")

	rootCmd.AddCommand(seedCmd)
}
