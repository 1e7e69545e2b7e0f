package main

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/repofleet/internal/application"
)

func newUpdateCmd() *cobra.Command {
	var (
		masterRepoURLs []string
		students       []string
		studentsFile   string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Push current master repo content to existing student repos",
		Long: `Refreshes existing student repos with the current content of their
master repos. Assumes the fleet was already provisioned with 'setup'; no
teams or repos are created.`,
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
			return svc.UpdateStudentRepos(cmd.Context(), masterRepoURLs, teams)
		},
	}

	cmd.Flags().StringSliceVar(&masterRepoURLs, "master-repo-urls", nil, "clone URLs of the master (template) repos")
	cmd.Flags().StringSliceVar(&students, "students", nil, "student teams; each entry is comma-separated member usernames")
	cmd.Flags().StringVar(&studentsFile, "students-file", "", "file with one team per line, members whitespace-separated")
	_ = cmd.MarkFlagRequired("master-repo-urls")

	return cmd
}
