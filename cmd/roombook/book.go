// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roombook/internal/registry"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Reserve a room for a time window",
	Long: `Book reserves every 30-minute slot in the window for a room. The whole
window is reserved atomically: a collision with an existing booking rejects
the request and writes nothing.`,
	RunE: runBook,
}

func runBook(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	room, _ := flags.GetString("room")
	date, _ := flags.GetString("date")
	start, _ := flags.GetString("start")
	end, _ := flags.GetString("end")
	bookedBy, _ := flags.GetString("booked-by")

	if room == "" || date == "" || start == "" || end == "" {
		return fmt.Errorf("--room, --date, --start and --end are required")
	}

	cfg := loadConfig()
	store, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	booking, err := store.Book(context.Background(), room, date, start, end, bookedBy)
	if err != nil {
		return err
	}

	fmt.Printf("Booked %s: %d slot(s), booking id %s\n", booking.RoomID, len(booking.Slots), booking.ID)
	return nil
}

func init() {
	bookCmd.Flags().String("room", "", "room id to book")
	bookCmd.Flags().String("date", "", "booking date (YYYY-MM-DD)")
	bookCmd.Flags().String("start", "", "window start (HH:MM:SS, 30-minute aligned)")
	bookCmd.Flags().String("end", "", "window end (HH:MM:SS, 30-minute aligned)")
	bookCmd.Flags().String("booked-by", "", "name or email of the booker")

	rootCmd.AddCommand(bookCmd)
}
