package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// pingCmd checks connectivity to the configured storage backend.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the storage backend connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		store, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s: %w", cfg.Storage.Backend, err)
		}
		fmt.Printf("%s: ok\n", cfg.Storage.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
