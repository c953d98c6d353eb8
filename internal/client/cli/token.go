package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/auth"
	"github.com/spf13/cobra"
)

func (a *App) newTokenCmd() *cobra.Command {
	var (
		secret   string
		operator string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator token for create",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = a.config.SecretKey
			}
			if secret == "" {
				return errors.New("--secret is required")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}

			token, err := auth.GenerateToken(operator, []byte(secret), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Server secret key (env: STORMCORE_SECRET_KEY)")
	cmd.Flags().StringVar(&operator, "operator", "accountctl", "Operator name recorded in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", a.config.TokenTTL, "Token lifetime, at most the server's accepted lifetime (env: STORMCORE_ACCESS_TOKEN_VALIDITY)")

	return cmd
}
