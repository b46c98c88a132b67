package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newSpawnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spawns",
		Short: "Spawn point commands",
	}

	cmd.AddCommand(newSpawnsShowCmd())
	cmd.AddCommand(newSpawnsSetFirstCmd())
	cmd.AddCommand(newSpawnsSetWorldCmd())

	return cmd
}

func newSpawnsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show stored spawn points",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Spawns
			if err := client.Get("/api/v1/spawns", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSpawnsSetFirstCmd() *cobra.Command {
	var loc Location

	cmd := &cobra.Command{
		Use:   "set-first",
		Short: "Set where first-time players appear",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loc.World == "" {
				return fmt.Errorf("--world is required")
			}

			var result Location
			if err := client.Put("/api/v1/spawns/first", loc, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&loc.World, "world", "", "World name (required)")
	_ = cmd.MarkFlagRequired("world")
	addCoordinateFlags(cmd, &loc)

	return cmd
}

func newSpawnsSetWorldCmd() *cobra.Command {
	var loc Location

	cmd := &cobra.Command{
		Use:   "set-world <world>",
		Short: "Set a world's spawn point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc.World = args[0]

			var result Location
			if err := client.Put("/api/v1/spawns/worlds/"+url.PathEscape(args[0]), loc, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	addCoordinateFlags(cmd, &loc)

	return cmd
}

func addCoordinateFlags(cmd *cobra.Command, loc *Location) {
	cmd.Flags().Float64Var(&loc.X, "x", 0, "X coordinate")
	cmd.Flags().Float64Var(&loc.Y, "y", 64, "Y coordinate")
	cmd.Flags().Float64Var(&loc.Z, "z", 0, "Z coordinate")
	cmd.Flags().Float32Var(&loc.Yaw, "yaw", 0, "Yaw in degrees")
	cmd.Flags().Float32Var(&loc.Pitch, "pitch", 0, "Pitch in degrees")
}
