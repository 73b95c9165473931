// Command token mints an admin JWT for the write routes of the data service.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fundraiser-display/internal/auth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Print an admin bearer token signed with ADMIN_JWT_SECRET",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load(".env.local")
			_ = godotenv.Load(".env")

			secret := os.Getenv("ADMIN_JWT_SECRET")
			if secret == "" {
				return errors.New("ADMIN_JWT_SECRET is not set")
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}

			tok, err := auth.GenerateToken([]byte(secret), auth.AdminSubject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
