package main

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/repofleet/internal/application"
)

func newSetupCmd() *cobra.Command {
	var (
		masterRepoURLs []string
		students       []string
		studentsFile   string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create student repos from master repos and push template content",
		Long: `Creates one repository per (master repo, student team) pair in the
configured organization. Teams are created if absent and members added
idempotently; repos that already exist are reused, so re-running after a
partial failure is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			teams, err := parseTeams(students, studentsFile)
			if err != nil {
				return err
			}
			api, err := newPlatformClient(cfg)
			if err != nil {
				return err
			}
			git, err := newGitClient(cfg)
			if err != nil {
				return err
			}

			svc := application.NewAdminService(api, git, cfg.DefaultBranch)
			return svc.SetupStudentRepos(cmd.Context(), masterRepoURLs, teams)
		},
	}

	cmd.Flags().StringSliceVar(&masterRepoURLs, "master-repo-urls", nil, "clone URLs of the master (template) repos")
	cmd.Flags().StringSliceVar(&students, "students", nil, "student teams; each entry is comma-separated member usernames")
	cmd.Flags().StringVar(&studentsFile, "students-file", "", "file with one team per line, members whitespace-separated")
	_ = cmd.MarkFlagRequired("master-repo-urls")

	return cmd
}
