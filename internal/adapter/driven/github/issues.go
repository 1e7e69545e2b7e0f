package github

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sync"
	"time"

	gh "github.com/google/go-github/v82/github"
	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
)

// GetRepoIssues fetches all issues of the repo regardless of state,
// handling pagination automatically. Pull requests, which GitHub reports
// through the same endpoint, are filtered out. Bodies absent on the
// platform come back as "" rather than a null-ish value.
func (c *Client) GetRepoIssues(ctx context.Context, repo model.Repo) ([]model.Issue, error) {
	opts := &gh.IssueListByRepoOptions{
		State:       "all",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var all []model.Issue
	for {
		issues, resp, err := c.gh.Issues.ListByRepo(ctx, c.org, repo.Name, opts)
		if err != nil {
			return nil, translate(err, "listing issues for %s/%s (page %d)", c.org, repo.Name, opts.ListOptions.Page)
		}

		logRateLimit(resp, c.org+"/"+repo.Name+"/issues", opts.ListOptions.Page, len(issues))

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, mapIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	if all == nil {
		all = []model.Issue{}
	}
	return all, nil
}

// CreateIssue opens a single issue on the repo. nil assignees leaves the
// Assignees field out of the request entirely, the platform's "don't
// touch" sentinel. An empty list is not an equivalent substitute: GitHub
// interprets it as an explicit unassign-all.
func (c *Client) CreateIssue(ctx context.Context, title, body string, repo model.Repo, assignees []string) (model.Issue, error) {
	req := &gh.IssueRequest{
		Title: gh.Ptr(title),
		Body:  gh.Ptr(body),
	}
	if assignees != nil {
		req.Assignees = &assignees
	}

	issue, resp, err := c.gh.Issues.Create(ctx, c.org, repo.Name, req)
	if err != nil {
		return model.Issue{}, translate(err, "creating issue in %s/%s", c.org, repo.Name)
	}
	logRateLimit(resp, c.org+"/"+repo.Name+"/issues", 0, 1)

	return mapIssue(issue), nil
}

// OpenIssue opens an identical issue on every named repo through a bounded
// worker pool. Per-repo failures are collected and joined after the batch;
// a failure on one repo never aborts the rest.
func (c *Client) OpenIssue(ctx context.Context, title, body string, repoNames []string) error {
	start := time.Now()

	var mu sync.Mutex
	var entityErrs []error

	g := &errgroup.Group{}
	g.SetLimit(c.concurrency)

	for _, name := range repoNames {
		g.Go(func() error {
			issue, err := c.CreateIssue(ctx, title, body, model.Repo{Name: name}, nil)
			if err != nil {
				mu.Lock()
				entityErrs = append(entityErrs, err)
				mu.Unlock()
				slog.Error("opening issue failed", "repo", name, "error", err)
				return nil
			}
			slog.Info("issue opened", "repo", name, "number", issue.Number, "title", title)
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("issue broadcast complete",
		"org", c.org,
		"repos", len(repoNames),
		"failed", len(entityErrs),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return errors.Join(entityErrs...)
}

// CloseIssue closes every open issue whose title matches titleRegex across
// the named repos. Repos with no matching open issue are logged, not
// failed.
func (c *Client) CloseIssue(ctx context.Context, titleRegex *regexp.Regexp, repoNames []string) error {
	var mu sync.Mutex
	var entityErrs []error

	g := &errgroup.Group{}
	g.SetLimit(c.concurrency)

	for _, name := range repoNames {
		g.Go(func() error {
			if err := c.closeMatchingIssues(ctx, name, titleRegex); err != nil {
				mu.Lock()
				entityErrs = append(entityErrs, err)
				mu.Unlock()
				slog.Error("closing issues failed", "repo", name, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(entityErrs...)
}

// closeMatchingIssues closes open issues with matching titles in one repo.
func (c *Client) closeMatchingIssues(ctx context.Context, repoName string, titleRegex *regexp.Regexp) error {
	issues, err := c.GetRepoIssues(ctx, model.Repo{Name: repoName})
	if err != nil {
		return err
	}

	closed := 0
	for _, issue := range issues {
		if issue.State != model.IssueStateOpen || !titleRegex.MatchString(issue.Title) {
			continue
		}
		req := &gh.IssueRequest{State: gh.Ptr("closed")}
		if _, _, err := c.gh.Issues.Edit(ctx, c.org, repoName, issue.Number, req); err != nil {
			return translate(err, "closing issue %s/%s#%d", c.org, repoName, issue.Number)
		}
		slog.Info("issue closed", "repo", repoName, "number", issue.Number, "title", issue.Title)
		closed++
	}

	if closed == 0 {
		slog.Warn("no open issues matched", "repo", repoName, "regex", titleRegex.String())
	}
	return nil
}

// mapIssue converts a go-github Issue to a domain model Issue. GetBody
// yields "" for an absent body, which keeps the no-null-bodies guarantee.
func mapIssue(issue *gh.Issue) model.Issue {
	return model.Issue{
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		Number:    issue.GetNumber(),
		CreatedAt: issue.GetCreatedAt().Time,
		Author:    issue.GetUser().GetLogin(),
		State:     model.IssueState(issue.GetState()),
	}
}
