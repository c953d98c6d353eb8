package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/status"
)

func (a *App) newCreateCmd() *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a battle.net account with its first game account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				password string
				err      error
			)
			if passwordStdin {
				password, err = ReadPasswordLine(cmd.InOrStdin())
			} else {
				password, err = GetNewPassword(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			s, err := a.newService(a.config.ServerAddr, a.config.Token)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", a.config.ServerAddr, err)
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), a.config.Timeout)
			defer cancel()

			resp, err := s.CreateAccount(ctx, email, password)
			if err != nil {
				st := status.Convert(err)
				return fmt.Errorf("create account: %s: %s", st.Code(), st.Message())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "id:        %d\nemail:     %s\nusername:  %s\njoin date: %s\n",
				resp.ID, resp.Email, resp.Username, resp.JoinDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
