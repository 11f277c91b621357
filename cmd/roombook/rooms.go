// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roombook/internal/registry"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List the rooms in the registry",
	RunE:  runRooms,
}

func runRooms(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	rooms, err := store.ListRooms(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rooms)
	}

	if len(rooms) == 0 {
		fmt.Println("Registry is empty. Run `roombook seed` to load an inventory.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-8s  %s\n", "Room", "Capacity", "Equipment")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 60))
	for _, room := range rooms {
		fmt.Fprintf(os.Stdout, "%-14s  %-8d  %s\n", room.RoomID, room.Capacity, equipmentSummary(room))
	}
	return nil
}

func init() {
	roomsCmd.Flags().Bool("json", false, "output rooms as JSON")

	rootCmd.AddCommand(roomsCmd)
}
