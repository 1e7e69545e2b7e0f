package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
	"github.com/ericfisherdev/repofleet/internal/domain/port/driven"
)

// IssueService broadcasts and withdraws issues across a fleet of student
// repos. Target repos are always the Cartesian product of teams and master
// repo names, computed with the same naming function the provisioner uses.
type IssueService struct {
	api driven.PlatformClient
}

// NewIssueService creates an IssueService.
func NewIssueService(api driven.PlatformClient) *IssueService {
	return &IssueService{api: api}
}

// OpenIssue opens the issue described by the file at issuePath on every
// student repo derived from masterRepoNames and teams. The file's first
// line is the title; everything after the first newline is the body,
// verbatim. Every computed repo receives exactly one issue with identical
// title and body.
func (s *IssueService) OpenIssue(ctx context.Context, masterRepoNames []string, teams []model.StudentTeam, issuePath string) error {
	if err := requireNonEmptyList("master_repo_names", len(masterRepoNames)); err != nil {
		return err
	}
	if err := requireNonEmptyList("students", len(teams)); err != nil {
		return err
	}
	if err := requireNonEmpty("issue_path", issuePath); err != nil {
		return err
	}

	title, body, err := readIssueFile(issuePath)
	if err != nil {
		return err
	}

	repoNames := model.GenerateRepoNames(teamNames(teams), masterRepoNames)
	slog.Info("broadcasting issue", "title", title, "repos", len(repoNames))

	return s.api.OpenIssue(ctx, title, body, repoNames)
}

// CloseIssue closes every issue whose title matches titleRegex across the
// student repos derived from masterRepoNames and teams. The pattern uses
// regular-expression match semantics, not substring search.
func (s *IssueService) CloseIssue(ctx context.Context, titleRegex string, masterRepoNames []string, teams []model.StudentTeam) error {
	if err := requireNonEmptyList("master_repo_names", len(masterRepoNames)); err != nil {
		return err
	}
	if err := requireNonEmptyList("students", len(teams)); err != nil {
		return err
	}

	pattern, err := regexp.Compile(titleRegex)
	if err != nil {
		return fmt.Errorf("argument 'title_regex' is not a valid regex: %w", err)
	}

	repoNames := model.GenerateRepoNames(teamNames(teams), masterRepoNames)
	slog.Info("closing matching issues", "regex", titleRegex, "repos", len(repoNames))

	return s.api.CloseIssue(ctx, pattern, repoNames)
}

// readIssueFile resolves issuePath to a regular file and splits it into
// title (first line) and body (the remainder, verbatim).
func readIssueFile(issuePath string) (title, body string, err error) {
	info, err := os.Stat(issuePath)
	if err != nil || !info.Mode().IsRegular() {
		return "", "", fmt.Errorf("%s is not a file", issuePath)
	}

	content, err := os.ReadFile(issuePath)
	if err != nil {
		return "", "", fmt.Errorf("reading issue file %s: %w", issuePath, err)
	}

	title, body, _ = strings.Cut(string(content), "\n")
	return strings.TrimSuffix(title, "\r"), body, nil
}
