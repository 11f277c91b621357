// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roombook/internal/engine"
	"github.com/pdiddy/roombook/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank available rooms for a time window",
	Long: `Rank filters rooms by availability and seat capacity for the requested
window, drops rooms whose sensor history violates the environmental
compliance rules, and orders the survivors by closeness to the requested
comfort and equipment profile. Rank 1 is the best match.`,
	RunE: runRank,
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	req, err := rankingRequestFromFlags(cmd)
	if err != nil {
		return err
	}
	req.Weights = cfg.Ranking.Weights

	logger := newLogger()
	eng, reg, sensors, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer reg.Close()
	defer sensors.Close()

	outcome, err := eng.RankRooms(context.Background(), req)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRankOutput(outcome, jsonOutput)
}

func rankingRequestFromFlags(cmd *cobra.Command) (types.RankingRequest, error) {
	flags := cmd.Flags()

	date, _ := flags.GetString("date")
	start, _ := flags.GetString("start")
	end, _ := flags.GetString("end")
	if date == "" || start == "" || end == "" {
		return types.RankingRequest{}, fmt.Errorf("--date, --start and --end are required")
	}

	capacity, _ := flags.GetInt("capacity")
	projector, _ := flags.GetBool("projector")
	blackboard, _ := flags.GetBool("blackboard")
	whiteboard, _ := flags.GetBool("whiteboard")
	smartboard, _ := flags.GetBool("smartboard")
	microphone, _ := flags.GetBool("microphone")
	pc, _ := flags.GetBool("pc")

	airQuality, _ := flags.GetString("air-quality")
	noise, _ := flags.GetString("noise")
	lighting, _ := flags.GetString("lighting")
	temperature, _ := flags.GetString("temperature")

	return types.RankingRequest{
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		SeatingCapacity: capacity,
		Equipment: types.EquipmentRequirements{
			Projector:  projector,
			Blackboard: blackboard,
			Whiteboard: whiteboard,
			Smartboard: smartboard,
			Microphone: microphone,
			PC:         pc,
		},
		Preferences: types.EnvironmentalPreferences{
			AirQuality:  types.AirQualityPreference(airQuality),
			Noise:       types.NoisePreference(noise),
			Lighting:    types.LightingPreference(lighting),
			Temperature: types.TemperaturePreference(temperature),
		},
	}, nil
}

func formatRankOutput(outcome engine.Outcome, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}

	if len(outcome.Rooms) == 0 {
		switch outcome.Status {
		case engine.StatusNoRoomsAvailable:
			fmt.Println("No rooms available for the requested window.")
		case engine.StatusNoCompliantRooms:
			fmt.Println("No available room passes the environmental compliance checks.")
		case engine.StatusRankingFailed:
			fmt.Println("Ranking failed; see logs.")
		default:
			fmt.Println("No rooms found.")
		}
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-14s  %-7s  %-8s  %s\n",
		"Rank", "Room", "Score", "Capacity", "Equipment")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))

	for _, room := range outcome.Rooms {
		fmt.Fprintf(os.Stdout, "%-4d  %-14s  %-7.4f  %-8d  %s\n",
			room.Rank, room.RoomID, room.Score, room.Equipment.Capacity,
			equipmentSummary(room.Equipment))
	}
	return nil
}

func equipmentSummary(room types.RoomEquipment) string {
	var parts []string
	if room.Projector {
		parts = append(parts, "projector")
	}
	if room.Blackboard {
		parts = append(parts, "blackboard")
	}
	if room.Whiteboard {
		parts = append(parts, "whiteboard")
	}
	if room.Smartboard {
		parts = append(parts, "smartboard")
	}
	if room.Microphone {
		parts = append(parts, "microphone")
	}
	if room.PC {
		parts = append(parts, "pc")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func init() {
	rankCmd.Flags().String("date", "", "booking date (YYYY-MM-DD)")
	rankCmd.Flags().String("start", "", "window start (HH:MM:SS, 30-minute aligned)")
	rankCmd.Flags().String("end", "", "window end (HH:MM:SS, 30-minute aligned)")
	rankCmd.Flags().Int("capacity", 0, "minimum seat capacity")
	rankCmd.Flags().Bool("projector", false, "require a projector")
	rankCmd.Flags().Bool("blackboard", false, "require a blackboard")
	rankCmd.Flags().Bool("whiteboard", false, "require a whiteboard")
	rankCmd.Flags().Bool("smartboard", false, "require a smartboard")
	rankCmd.Flags().Bool("microphone", false, "require a microphone")
	rankCmd.Flags().Bool("pc", false, "require a PC")
	rankCmd.Flags().String("air-quality", "normal", "air quality preference (normal|high)")
	rankCmd.Flags().String("noise", "normal", "noise preference (normal|silent)")
	rankCmd.Flags().String("lighting", "normal", "lighting preference (normal|bright)")
	rankCmd.Flags().String("temperature", "moderate", "temperature preference (cool|moderate|warm)")
	rankCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(rankCmd)
}
