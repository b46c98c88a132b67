package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var checkAuth bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the plugin server is up",
		Long: `Check the plugin server is up.

The health endpoint needs no API key. Pass --auth to also confirm the
configured key is accepted, which is the usual cause of a game server
that reaches the plugin but gets 401s back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			var result HealthResult
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}
			result.Server = cfg.ServerURL
			result.Latency = time.Since(start).Round(time.Millisecond).String()

			if checkAuth {
				if err := client.Get("/api/v1/spawns", nil); err != nil {
					return fmt.Errorf("server is up but the API key was not accepted: %w", err)
				}
				result.Auth = "ok"
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			if result.Status != "ok" {
				return fmt.Errorf("server reports status %q", result.Status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkAuth, "auth", false, "also check the API key is accepted")
	return cmd
}
