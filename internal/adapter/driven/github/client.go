// Package github implements the PlatformClient port using the go-github
// library. All platform failures leaving this package are platformerr
// taxonomy errors; translation happens in translate.go.
package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
	"github.com/ericfisherdev/repofleet/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PlatformClient = (*Client)(nil)

const (
	// canonicalAPIURL is the public GitHub API endpoint.
	canonicalAPIURL = "https://api.github.com"
	// enterpriseAPISuffix is the documented path suffix of GitHub
	// Enterprise API endpoints.
	enterpriseAPISuffix = "/api/v3"

	// perPage is the page size used for all list calls.
	perPage = 100
	// defaultConcurrency bounds the worker pools for batched entity
	// operations (repo creation, issue broadcast/close).
	defaultConcurrency = 8
)

// Client implements the driven.PlatformClient port using the go-github
// library, bound to one organization on one GitHub host.
type Client struct {
	gh          *gh.Client
	baseURL     string
	webURL      *url.URL // Host serving clone/web URLs, derived from baseURL.
	org         string
	user        string
	token       string
	concurrency int
}

// NewClient creates a GitHub API client for the given base URL with the
// following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
//
// The base URL must be either the public API endpoint or end with the
// enterprise API suffix; any other shape is rejected before any network
// call is made.
func NewClient(baseURL, token, org, user string) (*Client, error) {
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}
	if user == "" {
		return nil, fmt.Errorf("argument 'user' must not be empty")
	}
	if org == "" {
		return nil, fmt.Errorf("argument 'org_name' must not be empty")
	}

	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	if baseURL != canonicalAPIURL {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, platformerr.Wrap(platformerr.KindInvalidURL, err, "parsing base url %q", baseURL)
		}
		client.BaseURL = u
	}

	webURL, err := deriveWebURL(baseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		gh:          client,
		baseURL:     baseURL,
		webURL:      webURL,
		org:         org,
		user:        user,
		token:       token,
		concurrency: defaultConcurrency,
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and an
// arbitrary base URL, bypassing base URL shape validation and the rate
// limit middleware. This constructor is intended for testing, allowing
// injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, org, user, token string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	webURL, err := deriveWebURL(baseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		gh:          client,
		baseURL:     baseURL,
		webURL:      webURL,
		org:         org,
		user:        user,
		token:       token,
		concurrency: defaultConcurrency,
	}, nil
}

// ForOrganization returns a client bound to orgName, sharing credentials,
// host, and the underlying transport with the receiver.
func (c *Client) ForOrganization(orgName string) (driven.PlatformClient, error) {
	if orgName == "" {
		return nil, fmt.Errorf("argument 'org_name' must not be empty")
	}
	clone := *c
	clone.org = orgName
	return &clone, nil
}

// Organization returns the organization the client is bound to.
func (c *Client) Organization() string { return c.org }

// SetConcurrency bounds the worker pools used for batched operations.
// Values below 1 are ignored.
func (c *Client) SetConcurrency(n int) {
	if n >= 1 {
		c.concurrency = n
	}
}

// validateBaseURL rejects base URLs that cannot be a GitHub API endpoint.
func validateBaseURL(baseURL string) error {
	if baseURL == canonicalAPIURL || strings.HasSuffix(strings.TrimSuffix(baseURL, "/"), enterpriseAPISuffix) {
		return nil
	}
	return platformerr.New(platformerr.KindInvalidURL,
		"invalid base url, should either be %s or end with '%s'", canonicalAPIURL, enterpriseAPISuffix)
}

// deriveWebURL maps an API base URL to the URL serving the platform's web
// and clone endpoints: the public API maps to github.com, an enterprise
// API URL is the install's host with the API suffix stripped.
func deriveWebURL(baseURL string) (*url.URL, error) {
	raw := strings.TrimSuffix(baseURL, "/")
	if raw == canonicalAPIURL {
		raw = "https://github.com"
	} else {
		raw = strings.TrimSuffix(raw, enterpriseAPISuffix)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, platformerr.New(platformerr.KindInvalidURL, "cannot derive web url from base url %q", baseURL)
	}
	return u, nil
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 && resp.Rate.Limit > 0 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
