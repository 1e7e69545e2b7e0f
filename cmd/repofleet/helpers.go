package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	gitadapter "github.com/ericfisherdev/repofleet/internal/adapter/driven/git"
	githubadapter "github.com/ericfisherdev/repofleet/internal/adapter/driven/github"
	"github.com/ericfisherdev/repofleet/internal/config"
	"github.com/ericfisherdev/repofleet/internal/domain/model"
)

// loadConfig loads the environment configuration and requires credentials
// and an organization, since every fleet command talks to the platform.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("REPOFLEET_GITHUB_TOKEN and REPOFLEET_GITHUB_USER must be set")
	}
	if cfg.OrgName == "" {
		return nil, fmt.Errorf("REPOFLEET_ORG_NAME must be set")
	}
	return cfg, nil
}

// newPlatformClient wires the GitHub adapter from config.
func newPlatformClient(cfg *config.Config) (*githubadapter.Client, error) {
	client, err := githubadapter.NewClient(cfg.BaseURL, cfg.Token, cfg.OrgName, cfg.User)
	if err != nil {
		return nil, err
	}
	client.SetConcurrency(cfg.Concurrency)
	return client, nil
}

// newGitClient wires the git subprocess adapter from config.
func newGitClient(cfg *config.Config) (*gitadapter.Client, error) {
	client, err := gitadapter.NewClient(cfg.CloneRoot)
	if err != nil {
		return nil, err
	}
	client.Concurrency = cfg.Concurrency
	return client, nil
}

// parseTeams builds student teams from the --students flag values (each
// value is one team, members separated by commas) and/or a students file
// (one team per line, members separated by whitespace, '#' starts a
// comment line).
func parseTeams(students []string, studentsFile string) ([]model.StudentTeam, error) {
	var teams []model.StudentTeam

	for _, entry := range students {
		team, err := model.NewStudentTeam(strings.Split(entry, ","))
		if err != nil {
			return nil, fmt.Errorf("invalid --students entry %q: %w", entry, err)
		}
		teams = append(teams, team)
	}

	if studentsFile != "" {
		fileTeams, err := readStudentsFile(studentsFile)
		if err != nil {
			return nil, err
		}
		teams = append(teams, fileTeams...)
	}

	if len(teams) == 0 {
		return nil, fmt.Errorf("no students given: use --students or --students-file")
	}
	return teams, nil
}

func readStudentsFile(path string) ([]model.StudentTeam, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening students file: %w", err)
	}
	defer f.Close()

	var teams []model.StudentTeam
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		team, err := model.NewStudentTeam(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("invalid team %q in %s: %w", line, path, err)
		}
		teams = append(teams, team)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading students file: %w", err)
	}
	return teams, nil
}
