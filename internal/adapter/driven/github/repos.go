package github

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	gh "github.com/google/go-github/v82/github"
	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
)

// GetRepos lists all repos in the configured organization, optionally
// filtered to the given names. It handles pagination automatically.
func (c *Client) GetRepos(ctx context.Context, nameFilter []string) ([]model.Repo, error) {
	wanted := make(map[string]bool, len(nameFilter))
	for _, name := range nameFilter {
		wanted[name] = true
	}

	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var all []model.Repo
	for {
		repos, resp, err := c.gh.Repositories.ListByOrg(ctx, c.org, opts)
		if err != nil {
			return nil, translate(err, "listing repos in %s (page %d)", c.org, opts.Page)
		}

		logRateLimit(resp, c.org+"/repos", opts.Page, len(repos))

		for _, repo := range repos {
			if len(wanted) > 0 && !wanted[repo.GetName()] {
				continue
			}
			all = append(all, mapRepo(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if all == nil {
		all = []model.Repo{}
	}
	return all, nil
}

// CreateRepos provisions one repo per spec with ensure semantics: a name
// collision is converted internally to a fetch of the existing repo. Specs
// are processed by a bounded worker pool; per-entity failures are collected
// and joined after the batch so one failing spec never aborts the others.
// Results are returned in input order.
func (c *Client) CreateRepos(ctx context.Context, infos []model.RepoInfo) ([]model.Repo, error) {
	start := time.Now()

	repos := make([]model.Repo, len(infos))
	var mu sync.Mutex
	var entityErrs []error

	g := &errgroup.Group{}
	g.SetLimit(c.concurrency)

	for i, info := range infos {
		g.Go(func() error {
			repo, err := c.createSingleRepo(ctx, info)
			if err != nil {
				mu.Lock()
				entityErrs = append(entityErrs, err)
				mu.Unlock()
				slog.Error("repo creation failed", "repo", info.Name, "error", err)
				return nil
			}
			repos[i] = repo
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("repo batch complete",
		"org", c.org,
		"requested", len(infos),
		"failed", len(entityErrs),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if len(entityErrs) > 0 {
		return repos, errors.Join(entityErrs...)
	}
	return repos, nil
}

// createSingleRepo is the ensure-or-fetch primitive behind CreateRepos.
func (c *Client) createSingleRepo(ctx context.Context, info model.RepoInfo) (model.Repo, error) {
	spec := &gh.Repository{
		Name:        gh.Ptr(info.Name),
		Description: gh.Ptr(info.Description),
		Private:     gh.Ptr(info.Private),
	}
	if info.TeamID != 0 {
		spec.TeamID = gh.Ptr(info.TeamID)
	}

	created, resp, err := c.gh.Repositories.Create(ctx, c.org, spec)
	if err == nil {
		logRateLimit(resp, c.org+"/"+info.Name, 0, 1)
		return mapRepo(created), nil
	}

	terr := translate(err, "creating repo %s in %s", info.Name, c.org)
	if !platformerr.IsAlreadyExists(terr) {
		return model.Repo{}, terr
	}

	slog.Debug("repo exists, fetching instead", "repo", info.Name, "org", c.org)
	existing, _, err := c.gh.Repositories.Get(ctx, c.org, info.Name)
	if err != nil {
		return model.Repo{}, translate(err, "fetching existing repo %s in %s", info.Name, c.org)
	}
	return mapRepo(existing), nil
}

// DeleteRepo deletes the remote repo. Deleting a repo that no longer
// exists surfaces a not-found error; the operation is not no-op-safe.
func (c *Client) DeleteRepo(ctx context.Context, repo model.Repo) error {
	if _, err := c.gh.Repositories.Delete(ctx, c.org, repo.Name); err != nil {
		return translate(err, "deleting repo %s in %s", repo.Name, c.org)
	}
	return nil
}

// mapRepo converts a go-github Repository to a domain model Repo.
func mapRepo(repo *gh.Repository) model.Repo {
	return model.Repo{
		Name:        repo.GetName(),
		Description: repo.GetDescription(),
		Private:     repo.GetPrivate(),
		HTMLURL:     repo.GetHTMLURL(),
	}
}
