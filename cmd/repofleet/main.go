// Command repofleet manages classroom repository fleets on GitHub:
// provisioning per-team repos from master (template) repos, pushing
// template updates across the fleet, and broadcasting issues.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for static binary distribution
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "repofleet",
		Short: "Classroom repository fleet manager for GitHub",
		Long: `repofleet provisions and maintains one repository per student team from a
set of master (template) repositories, and broadcasts issues across the
fleet. Credentials and platform settings are read from REPOFLEET_* environment
variables.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newSetupCmd(),
		newUpdateCmd(),
		newOpenIssueCmd(),
		newCloseIssueCmd(),
		newVerifyCmd(),
	)

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
