package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every REPOFLEET_ env var that Load() reads.
var allConfigKeys = []string{
	"REPOFLEET_GITHUB_TOKEN",
	"REPOFLEET_GITHUB_USER",
	"REPOFLEET_ORG_NAME",
	"REPOFLEET_GITHUB_BASE_URL",
	"REPOFLEET_DEFAULT_BRANCH",
	"REPOFLEET_CLONE_ROOT",
	"REPOFLEET_CONCURRENCY",
}

// isolateConfigEnv saves and unsets all REPOFLEET_ env vars so tests don't
// inherit values from the host environment. t.Cleanup restores original
// values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOFLEET_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("REPOFLEET_GITHUB_USER", "teacher")
	t.Setenv("REPOFLEET_ORG_NAME", "test-org")
	t.Setenv("REPOFLEET_GITHUB_BASE_URL", "https://some.host/api/v3")
	t.Setenv("REPOFLEET_DEFAULT_BRANCH", "main")
	t.Setenv("REPOFLEET_CLONE_ROOT", "/tmp/fleet")
	t.Setenv("REPOFLEET_CONCURRENCY", "4")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghp_test123", cfg.Token)
	assert.Equal(t, "teacher", cfg.User)
	assert.Equal(t, "test-org", cfg.OrgName)
	assert.Equal(t, "https://some.host/api/v3", cfg.BaseURL)
	assert.Equal(t, "main", cfg.DefaultBranch)
	assert.Equal(t, "/tmp/fleet", cfg.CloneRoot)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOFLEET_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("REPOFLEET_GITHUB_USER", "teacher")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "master", cfg.DefaultBranch)
	assert.Equal(t, "", cfg.CloneRoot)
	assert.Equal(t, 8, cfg.Concurrency)
}

// Credentials may be absent at load time; commands that need them fail
// with their own message.
func TestLoad_MissingCredentials(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_HasCredentials(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOFLEET_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("REPOFLEET_GITHUB_USER", "teacher")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.HasCredentials())
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOFLEET_CONCURRENCY", "not-a-number")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPOFLEET_CONCURRENCY")
}

func TestLoad_NonPositiveConcurrency(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOFLEET_CONCURRENCY", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPOFLEET_CONCURRENCY")
}
