package main

import (
	"fmt"

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/repofleet/internal/adapter/driven/github"
	"github.com/ericfisherdev/repofleet/internal/config"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify platform settings before running destructive operations",
		Long: `Runs the pre-flight check sequence: Internet reachability, token
validity and scopes, user and organization resolution, and organization
membership. Run this once before the first 'setup'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.User == "" {
				return fmt.Errorf("REPOFLEET_GITHUB_USER must be set")
			}
			if cfg.OrgName == "" {
				return fmt.Errorf("REPOFLEET_ORG_NAME must be set")
			}

			verifier := &githubadapter.SettingsVerifier{}
			if err := verifier.Verify(cmd.Context(), cfg.User, cfg.OrgName, cfg.BaseURL, cfg.Token); err != nil {
				return err
			}

			fmt.Println("all settings verified")
			return nil
		},
	}

	return cmd
}
