package github

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
)

// connectivityProbeURL is the well-known endpoint probed before any
// platform call, to tell "the platform is down" apart from "the network
// is down".
const connectivityProbeURL = "https://www.google.com"

// requiredTokenScopes are the OAuth scopes the access token must carry for
// fleet management: org/team administration and private repo access.
var requiredTokenScopes = []string{"admin:org", "repo"}

// SettingsVerifier runs the pre-flight validation sequence over a set of
// platform settings. The zero value verifies against the real platform;
// tests inject ProbeURL and HTTPClient to point at httptest servers.
type SettingsVerifier struct {
	ProbeURL   string
	HTTPClient *http.Client
}

// Verify checks the given settings in a strictly ordered sequence; the
// first failing check is terminal and no later check runs. The checks are:
//
//  1. base URL shape (determines client construction itself)
//  2. Internet reachability via a well-known external host
//  3. token non-empty
//  4. token carries all required OAuth scopes
//  5. the user resolves on the platform
//  6. the fetched user's login matches the requested login
//  7. the organization resolves on the platform
//  8. the user is a member of the organization
//
// A ninth, non-fatal check warns when the user is not an organization
// owner. On success Verify returns nil; otherwise exactly one taxonomy
// error carrying a human-readable diagnostic.
func (v *SettingsVerifier) Verify(ctx context.Context, user, orgName, baseURL, token string) error {
	if err := validateBaseURL(baseURL); err != nil {
		return err
	}

	if err := v.checkConnectivity(ctx); err != nil {
		return err
	}

	if token == "" {
		return platformerr.New(platformerr.KindBadCredentials, "token is empty")
	}

	api, err := v.newAPIClient(baseURL, token)
	if err != nil {
		return err
	}

	if err := v.checkTokenScopes(ctx, api); err != nil {
		return err
	}

	fetched, _, err := api.Users.Get(ctx, user)
	if err != nil {
		return translate(err, "fetching user %s", user)
	}

	switch login := fetched.GetLogin(); {
	case login == "":
		return platformerr.New(platformerr.KindUnexpected,
			"fetched user's login is empty. possible reasons: bad api url")
	case login != user:
		return platformerr.New(platformerr.KindUnexpected,
			"specified login is %s, but the fetched user's login is %s. possible reasons: unknown", user, login)
	}

	if _, _, err := api.Organizations.Get(ctx, orgName); err != nil {
		return translate(err, "fetching organization %s", orgName)
	}

	members, err := v.listMembers(ctx, api, orgName, "")
	if err != nil {
		return err
	}
	if !members[user] {
		return platformerr.New(platformerr.KindBadCredentials, "user %s is not a member of %s", user, orgName)
	}

	owners, err := v.listMembers(ctx, api, orgName, "admin")
	if err != nil {
		return err
	}
	if !owners[user] {
		slog.Warn("user is not an owner, some features may not be available",
			"user", user, "org", orgName)
	}

	slog.Info("settings verified", "user", user, "org", orgName, "base_url", baseURL)
	return nil
}

// checkConnectivity probes a well-known external host. Failure here means
// the network itself is unavailable, not the platform.
func (v *SettingsVerifier) checkConnectivity(ctx context.Context) error {
	probeURL := v.ProbeURL
	if probeURL == "" {
		probeURL = connectivityProbeURL
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, probeURL, nil)
	if err != nil {
		return platformerr.Wrap(platformerr.KindInternetUnavailable, err,
			"could not establish an Internet connection")
	}

	resp, err := v.httpClient().Do(req)
	if err != nil {
		return platformerr.Wrap(platformerr.KindInternetUnavailable, err,
			"could not establish an Internet connection")
	}
	resp.Body.Close()
	return nil
}

// checkTokenScopes reads the granted scopes off the X-OAuth-Scopes header
// of a root API call and requires requiredTokenScopes to be a subset.
func (v *SettingsVerifier) checkTokenScopes(ctx context.Context, api *gh.Client) error {
	req, err := api.NewRequest(http.MethodGet, "", nil)
	if err != nil {
		return platformerr.Wrap(platformerr.KindUnexpected, err, "building scope probe request")
	}

	resp, err := api.Do(ctx, req, nil)
	if err != nil {
		return translate(err, "fetching token scopes")
	}

	granted := make(map[string]bool)
	for _, scope := range strings.Split(resp.Header.Get("X-OAuth-Scopes"), ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			granted[scope] = true
		}
	}

	for _, required := range requiredTokenScopes {
		if !granted[required] {
			return platformerr.New(platformerr.KindBadCredentials,
				"missing one or more access token scopes, required scopes: %s",
				strings.Join(requiredTokenScopes, ", "))
		}
	}
	return nil
}

// listMembers collects the logins of org members with the given role
// filter ("" means all members).
func (v *SettingsVerifier) listMembers(ctx context.Context, api *gh.Client, orgName, role string) (map[string]bool, error) {
	opts := &gh.ListMembersOptions{
		Role:        role,
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	members := make(map[string]bool)
	for {
		users, resp, err := api.Organizations.ListMembers(ctx, orgName, opts)
		if err != nil {
			return nil, translate(err, "listing members of %s", orgName)
		}
		for _, u := range users {
			members[u.GetLogin()] = true
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return members, nil
}

// newAPIClient builds a go-github client for the verifier's own calls.
func (v *SettingsVerifier) newAPIClient(baseURL, token string) (*gh.Client, error) {
	api := gh.NewClient(v.HTTPClient).WithAuthToken(token)
	if baseURL != canonicalAPIURL {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, platformerr.Wrap(platformerr.KindInvalidURL, err, "parsing base url %q", baseURL)
		}
		api.BaseURL = u
	}
	return api, nil
}

// httpClient returns the injected client or a default with a sane timeout.
func (v *SettingsVerifier) httpClient() *http.Client {
	if v.HTTPClient != nil {
		return v.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}
