package main

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/repofleet/internal/application"
)

func newOpenIssueCmd() *cobra.Command {
	var (
		masterRepoNames []string
		students        []string
		studentsFile    string
		issuePath       string
	)

	cmd := &cobra.Command{
		Use:   "open-issue",
		Short: "Open an identical issue on every student repo",
		Long: `Opens one issue per student repo derived from the given master repo
names and students. The issue file's first line is the title; everything
after the first newline is the body, verbatim (markdown included).`,
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

			svc := application.NewIssueService(api)
			return svc.OpenIssue(cmd.Context(), masterRepoNames, teams, issuePath)
		},
	}

	cmd.Flags().StringSliceVar(&masterRepoNames, "master-repo-names", nil, "base names of the master repos")
	cmd.Flags().StringSliceVar(&students, "students", nil, "student teams; each entry is comma-separated member usernames")
	cmd.Flags().StringVar(&studentsFile, "students-file", "", "file with one team per line, members whitespace-separated")
	cmd.Flags().StringVar(&issuePath, "issue", "", "path to the issue file (first line title, rest body)")
	_ = cmd.MarkFlagRequired("master-repo-names")
	_ = cmd.MarkFlagRequired("issue")

	return cmd
}

func newCloseIssueCmd() *cobra.Command {
	var (
		masterRepoNames []string
		students        []string
		studentsFile    string
		titleRegex      string
	)

	cmd := &cobra.Command{
		Use:   "close-issue",
		Short: "Close issues with matching titles across student repos",
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

			svc := application.NewIssueService(api)
			return svc.CloseIssue(cmd.Context(), titleRegex, masterRepoNames, teams)
		},
	}

	cmd.Flags().StringSliceVar(&masterRepoNames, "master-repo-names", nil, "base names of the master repos")
	cmd.Flags().StringSliceVar(&students, "students", nil, "student teams; each entry is comma-separated member usernames")
	cmd.Flags().StringVar(&studentsFile, "students-file", "", "file with one team per line, members whitespace-separated")
	cmd.Flags().StringVar(&titleRegex, "title-regex", "", "regular expression matched against issue titles")
	_ = cmd.MarkFlagRequired("master-repo-names")
	_ = cmd.MarkFlagRequired("title-regex")

	return cmd
}
