package driven

import (
	"context"
	"regexp"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
)

// PlatformClient defines the driven port for the hosting platform. All
// implementations translate native platform failures into platformerr
// taxonomy errors; callers never see platform SDK error types.
type PlatformClient interface {
	// GetRepos lists all repos in the configured organization, optionally
	// filtered to the given names. Pagination is handled transparently.
	GetRepos(ctx context.Context, nameFilter []string) ([]model.Repo, error)

	// CreateRepos creates one repo per spec with ensure semantics: a name
	// collision resolves to a fetch of the existing repo instead of a
	// failure. Results are returned in input order. Per-entity failures are
	// collected and joined; one failing spec does not abort the others.
	CreateRepos(ctx context.Context, infos []model.RepoInfo) ([]model.Repo, error)

	// DeleteRepo deletes the remote repo. Deleting an already-deleted repo
	// surfaces a not-found error; the operation is not no-op-safe.
	DeleteRepo(ctx context.Context, repo model.Repo) error

	// EnsureTeamsAndMembers creates each team if absent (an existing team
	// is fetched instead) and adds every listed member, idempotently.
	// It returns one platform Team per input team, preserving input order;
	// each Team's Members lists the members whose add succeeded.
	EnsureTeamsAndMembers(ctx context.Context, teams []model.StudentTeam) ([]model.Team, error)

	// GetRepoURLs builds clone URLs for repos in the configured org. With
	// teamNames, the Cartesian product of (team, assignment) student repo
	// names is expanded in assignment-major order; otherwise the bare
	// assignment names are used. insertAuth embeds credentials.
	GetRepoURLs(assignmentNames []string, insertAuth bool, teamNames []string) ([]string, error)

	// InsertAuth embeds "user:token" into the URL's authority component.
	// URLs whose host does not belong to the configured platform are
	// rejected with an invalid-url error.
	InsertAuth(rawURL string) (string, error)

	// GetRepoIssues fetches all issues of the repo regardless of state.
	// Issue bodies absent on the platform are normalized to "".
	GetRepoIssues(ctx context.Context, repo model.Repo) ([]model.Issue, error)

	// CreateIssue opens a single issue. nil assignees means "leave
	// assignment untouched" (the platform's unset sentinel), which is not
	// equivalent to an empty list.
	CreateIssue(ctx context.Context, title, body string, repo model.Repo, assignees []string) (model.Issue, error)

	// OpenIssue opens an identical issue on every named repo. Per-repo
	// failures are collected and joined after the batch.
	OpenIssue(ctx context.Context, title, body string, repoNames []string) error

	// CloseIssue closes every open issue whose title matches titleRegex
	// across the named repos.
	CloseIssue(ctx context.Context, titleRegex *regexp.Regexp, repoNames []string) error

	// ForOrganization returns a client bound to another organization with
	// the same credentials and host, without re-authenticating.
	ForOrganization(orgName string) (PlatformClient, error)
}
