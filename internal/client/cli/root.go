package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func (a *App) NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "accountctl",
		Short: "Operator tool for the StormCore accounts server",
		Long: `accountctl provisions battle.net accounts on a running accounts server
and computes the password verifiers the authentication server stores.`,
		SilenceUsage: true,
	}

	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ServerAddr, "server", a.config.ServerAddr, "Server gRPC address (env: STORMCORE_SERVER)")
	rootCmd.PersistentFlags().StringVar(&a.config.Token, "token", a.config.Token, "Operator token (env: STORMCORE_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&a.config.Timeout, "timeout", a.config.Timeout, "Request timeout (env: STORMCORE_TIMEOUT)")

	// Add subcommands
	rootCmd.AddCommand(a.newCreateCmd())
	rootCmd.AddCommand(a.newHashCmd())
	rootCmd.AddCommand(a.newTokenCmd())

	return rootCmd
}

// Execute runs accountctl against the process streams.
func Execute(ctx context.Context) {
	app, err := NewApp(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := app.NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
