package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newBansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bans",
		Short: "Ban management commands",
	}

	cmd.AddCommand(newBansListCmd())
	cmd.AddCommand(newBansAddCmd())
	cmd.AddCommand(newBansRemoveCmd())

	return cmd
}

func newBansListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active bans",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BanList
			if err := client.Get("/api/v1/bans", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newBansAddCmd() *cobra.Command {
	var operator string

	cmd := &cobra.Command{
		Use:   "add <player> <days> <reason...>",
		Short: "Ban a player (days 0 = permanent)",
		Long: `Ban a player by UUID, or by name if they are online.
A player who is online is kicked and the ban is announced.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("days must be a number: %q", args[1])
			}

			req := map[string]any{
				"player":   args[0],
				"days":     days,
				"reason":   strings.Join(args[2:], " "),
				"operator": operator,
			}
			var result Ban
			if err := client.Post("/api/v1/bans", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "Name recorded as the issuer (default Console)")

	return cmd
}

func newBansRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <player|uuid>",
		Aliases: []string{"rm"},
		Short:   "Lift a ban",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result UnbanResult
			if err := client.Delete("/api/v1/bans/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
