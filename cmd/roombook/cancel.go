// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roombook/internal/registry"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <booking-id>",
	Short: "Cancel a booking by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

func runCancel(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Cancel(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Cancelled booking %s\n", args[0])
	return nil
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}
