package github

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
)

// EnsureTeamsAndMembers provisions one platform team per student team:
// each team is created if absent (a name collision resolves to a fetch of
// the existing team) and every member is added idempotently. It returns
// one Team per input team, preserving input order. Per-team failures are
// collected and joined; teams that did ensure successfully are still
// returned.
func (c *Client) EnsureTeamsAndMembers(ctx context.Context, teams []model.StudentTeam) ([]model.Team, error) {
	ensured := make([]model.Team, 0, len(teams))
	var entityErrs []error

	for _, team := range teams {
		platformTeam, err := c.ensureTeam(ctx, team.Name)
		if err != nil {
			entityErrs = append(entityErrs, err)
			slog.Error("team ensure failed", "team", team.Name, "org", c.org, "error", err)
			continue
		}

		// Members reflects what was actually provisioned, not the request.
		added := make([]string, 0, len(team.Members))
		for _, member := range team.Members {
			if err := c.addTeamMember(ctx, platformTeam.GetSlug(), member); err != nil {
				entityErrs = append(entityErrs, err)
				slog.Error("adding team member failed",
					"team", team.Name, "member", member, "error", err)
				continue
			}
			added = append(added, member)
		}

		ensured = append(ensured, model.Team{
			ID:      platformTeam.GetID(),
			Name:    team.Name,
			Members: added,
		})
	}

	slog.Info("teams ensured", "org", c.org, "teams", len(ensured), "failed", len(entityErrs))

	if len(entityErrs) > 0 {
		return ensured, errors.Join(entityErrs...)
	}
	return ensured, nil
}

// ensureTeam creates the named team, or fetches it when creation reports
// that it already exists.
func (c *Client) ensureTeam(ctx context.Context, name string) (*gh.Team, error) {
	created, resp, err := c.gh.Teams.CreateTeam(ctx, c.org, gh.NewTeam{
		Name:    name,
		Privacy: gh.Ptr("closed"),
	})
	if err == nil {
		logRateLimit(resp, c.org+"/teams", 0, 1)
		return created, nil
	}

	terr := translate(err, "creating team %s in %s", name, c.org)
	if !platformerr.IsAlreadyExists(terr) {
		return nil, terr
	}

	slog.Debug("team exists, fetching instead", "team", name, "org", c.org)
	existing, _, err := c.gh.Teams.GetTeamBySlug(ctx, c.org, teamSlug(name))
	if err != nil {
		return nil, translate(err, "fetching existing team %s in %s", name, c.org)
	}
	return existing, nil
}

// addTeamMember adds a user to a team. The underlying call is a PUT, so
// adding an existing member is a no-op on the platform side.
func (c *Client) addTeamMember(ctx context.Context, slug, username string) error {
	_, _, err := c.gh.Teams.AddTeamMembershipBySlug(ctx, c.org, slug, username, nil)
	if err != nil {
		return translate(err, "adding %s to team %s in %s", username, slug, c.org)
	}
	return nil
}

// teamSlug approximates GitHub's team name slugification for lookups after
// a creation collision.
func teamSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
