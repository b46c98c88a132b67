package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/mixplugin-go/internal/services/auth"
)

func newHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key [key]",
		Short: "Hash an API key for MIXPLUGIN_API_KEY_HASH",
		Long: `Print the bcrypt hash of an API key. With no key, a new random key is
generated and printed along with its hash. Does not contact the server.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HashedKey
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				key = auth.GenerateKey()
				result.Key = key
			}

			hash, err := auth.HashKey(key)
			if err != nil {
				return err
			}
			result.Hash = hash

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
