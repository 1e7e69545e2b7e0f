package github

import (
	"net/url"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
)

// GetRepoURLs builds clone URLs for repos in the configured organization.
// With teamNames, the (team, assignment) Cartesian product of student repo
// names is expanded in assignment-major, team-minor order; otherwise the
// bare assignment names are used. No network calls are made: URLs are
// constructed from the platform's web host.
func (c *Client) GetRepoURLs(assignmentNames []string, insertAuth bool, teamNames []string) ([]string, error) {
	repoNames := assignmentNames
	if len(teamNames) > 0 {
		repoNames = model.GenerateRepoNames(teamNames, assignmentNames)
	}

	urls := make([]string, 0, len(repoNames))
	for _, name := range repoNames {
		repoURL := c.repoURL(name)
		if insertAuth {
			authed, err := c.InsertAuth(repoURL)
			if err != nil {
				return nil, err
			}
			repoURL = authed
		}
		urls = append(urls, repoURL)
	}
	return urls, nil
}

// InsertAuth embeds "user:token" into the URL's authority component. URLs
// whose host does not belong to the configured platform are rejected.
func (c *Client) InsertAuth(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", platformerr.Wrap(platformerr.KindInvalidURL, err, "parsing url %q", rawURL)
	}
	if !c.onPlatform(u) {
		return "", platformerr.New(platformerr.KindInvalidURL, "url not found on platform: %q", rawURL)
	}

	u.User = url.UserPassword(c.user, c.token)
	return u.String(), nil
}

// onPlatform reports whether the URL's host belongs to the configured
// platform (the web host or the API host itself).
func (c *Client) onPlatform(u *url.URL) bool {
	if u.Host == "" {
		return false
	}
	if u.Host == c.webURL.Host {
		return true
	}
	api, err := url.Parse(c.baseURL)
	return err == nil && u.Host == api.Host
}

// repoURL returns the web-host URL of a repo in the configured org.
func (c *Client) repoURL(name string) string {
	return c.webURL.String() + "/" + c.org + "/" + name
}
