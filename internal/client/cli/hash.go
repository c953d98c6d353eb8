package cli

import (
	"errors"
	"fmt"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/cryptox"
	"github.com/spf13/cobra"
)

// newHashCmd computes verifiers locally, without contacting the server.
func (a *App) newHashCmd() *cobra.Command {
	var (
		email      string
		identifier string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Compute password verifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" && identifier == "" {
				return errors.New("--email or --identifier is required")
			}

			if password == "" {
				var err error
				if password, err = GetPassword(cmd.ErrOrStderr(), "Enter password: "); err != nil {
					return err
				}
			}

			if email != "" {
				h, err := cryptox.UmbrellaAccountHash(email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "umbrella: %s\n", h)
			}
			if identifier != "" {
				h, err := cryptox.LegacyAccountHash(identifier, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "legacy:   %s\n", h)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Battle.net account email")
	cmd.Flags().StringVar(&identifier, "identifier", "", "Game account login, e.g. 1#1")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")

	return cmd
}
