// Package application contains the use-case orchestration services: fleet
// setup/update and issue broadcasting. All argument validation happens
// here, synchronously, before any network or filesystem side effect.
package application

import (
	"fmt"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
)

// requireNonEmpty rejects empty string arguments. The message always names
// the offending argument.
func requireNonEmpty(name, value string) error {
	if value == "" {
		return fmt.Errorf("argument '%s' must not be empty", name)
	}
	return nil
}

// requireNonEmptyList rejects empty collection arguments.
func requireNonEmptyList(name string, length int) error {
	if length == 0 {
		return fmt.Errorf("argument '%s' must not be empty", name)
	}
	return nil
}

// requireNoDuplicates rejects collections with repeated entries. Duplicate
// detection precedes any remote call, so a bad batch fails before any
// partial state is created.
func requireNoDuplicates(name string, items []string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			return fmt.Errorf("%s contains duplicates", name)
		}
		seen[item] = true
	}
	return nil
}

// validateMasterURLsAndTeams is the shared fail-fast validation for batch
// operations over the (master repos x teams) product.
func validateMasterURLsAndTeams(masterRepoURLs []string, teams []model.StudentTeam) error {
	if err := requireNonEmptyList("master_repo_urls", len(masterRepoURLs)); err != nil {
		return err
	}
	if err := requireNoDuplicates("master_repo_urls", masterRepoURLs); err != nil {
		return err
	}
	if err := requireNonEmptyList("students", len(teams)); err != nil {
		return err
	}
	for _, team := range teams {
		if team.Name == "" || len(team.Members) == 0 {
			return fmt.Errorf("argument 'students' contains an empty team")
		}
	}
	return nil
}

// teamNames projects the team names out of a list of student teams.
func teamNames(teams []model.StudentTeam) []string {
	names := make([]string, len(teams))
	for i, team := range teams {
		names[i] = team.Name
	}
	return names
}
