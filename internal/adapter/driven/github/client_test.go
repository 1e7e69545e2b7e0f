package github_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ericfisherdev/repofleet/internal/adapter/driven/github"
	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
)

const (
	testOrg   = "test-org"
	testUser  = "slarse"
	testToken = "test-token"
)

// newTestClient creates a Client backed by the given httptest handler.
// The test constructor skips the rate limit middleware and base URL shape
// validation.
func newTestClient(t *testing.T, handler http.Handler) (*ghAdapter.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(
		server.Client(),
		server.URL+"/",
		testOrg,
		testUser,
		testToken,
	)
	require.NoError(t, err)

	return client, server
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	badURLs := []string{
		"https://github.com",
		"https://some_enterprise_host",
		"https://some_enterprise_host/api/v2",
	}
	for _, badURL := range badURLs {
		_, err := ghAdapter.NewClient(badURL, testToken, testOrg, testUser)
		require.Error(t, err, badURL)
		assert.True(t, platformerr.IsInvalidURL(err), badURL)
		assert.Contains(t, err.Error(), "invalid base url, should either be https://api.github.com or end with '/api/v3'")
	}
}

func TestNewClient_AcceptsValidBaseURLs(t *testing.T) {
	validURLs := []string{
		"https://api.github.com",
		"https://some_enterprise_host/api/v3",
	}
	for _, validURL := range validURLs {
		client, err := ghAdapter.NewClient(validURL, testToken, testOrg, testUser)
		require.NoError(t, err, validURL)
		assert.NotNil(t, client)
	}
}

func TestNewClient_RejectsEmptyUser(t *testing.T) {
	_, err := ghAdapter.NewClient("https://api.github.com", testToken, testOrg, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 'user' must not be empty")
}

func TestNewClient_RejectsEmptyOrg(t *testing.T) {
	_, err := ghAdapter.NewClient("https://api.github.com", testToken, "", testUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 'org_name' must not be empty")
}

func TestInsertAuth_EmbedsCredentials(t *testing.T) {
	client, server := newTestClient(t, http.NotFoundHandler())

	authed, err := client.InsertAuth(server.URL + "/some/repo")

	require.NoError(t, err)
	assert.Contains(t, authed, testUser+":"+testToken+"@")
	assert.Contains(t, authed, "/some/repo")
}

func TestInsertAuth_RejectsForeignHost(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.InsertAuth("https://somedomain.com/some/repo")

	require.Error(t, err)
	assert.True(t, platformerr.IsInvalidURL(err))
	assert.Contains(t, err.Error(), "url not found on platform")
}

func TestGetRepoURLs_BareNames(t *testing.T) {
	client, server := newTestClient(t, http.NotFoundHandler())

	urls, err := client.GetRepoURLs([]string{"week-1", "week-2"}, false, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{
		server.URL + "/" + testOrg + "/week-1",
		server.URL + "/" + testOrg + "/week-2",
	}, urls)
}

func TestGetRepoURLs_WithTeamsExpandsCartesianProduct(t *testing.T) {
	client, server := newTestClient(t, http.NotFoundHandler())

	urls, err := client.GetRepoURLs([]string{"week-1", "week-2"}, false, []string{"a", "b", "c"})

	require.NoError(t, err)
	expected := []string{
		server.URL + "/" + testOrg + "/a-week-1",
		server.URL + "/" + testOrg + "/b-week-1",
		server.URL + "/" + testOrg + "/c-week-1",
		server.URL + "/" + testOrg + "/a-week-2",
		server.URL + "/" + testOrg + "/b-week-2",
		server.URL + "/" + testOrg + "/c-week-2",
	}
	assert.Equal(t, expected, urls)
}

func TestGetRepoURLs_WithAuth(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	urls, err := client.GetRepoURLs([]string{"week-1"}, true, []string{"a"})

	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], testUser+":"+testToken+"@")
	assert.Contains(t, urls[0], "/"+testOrg+"/a-week-1")
}

func TestForOrganization_BindsNewOrg(t *testing.T) {
	client, server := newTestClient(t, http.NotFoundHandler())

	other, err := client.ForOrganization("some-other-org")
	require.NoError(t, err)

	urls, err := other.GetRepoURLs([]string{"week-1"}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{server.URL + "/some-other-org/week-1"}, urls)

	// The original client is unchanged.
	assert.Equal(t, testOrg, client.Organization())
}

func TestForOrganization_RejectsEmptyName(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.ForOrganization("")
	assert.Error(t, err)
}
