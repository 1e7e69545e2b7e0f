// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultBaseURL is the public GitHub API endpoint used when no base URL
// is configured.
const DefaultBaseURL = "https://api.github.com"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Token         string
	User          string
	OrgName       string
	BaseURL       string
	DefaultBranch string
	CloneRoot     string
	Concurrency   int
}

// HasCredentials returns true when both Token and User are non-empty.
// Commands that talk to the platform require credentials; verify-only
// diagnostics report their absence with a clearer message.
func (c *Config) HasCredentials() bool {
	return c.Token != "" && c.User != ""
}

// Load reads configuration from environment variables and returns a validated
// Config. Credentials (REPOFLEET_GITHUB_TOKEN, REPOFLEET_GITHUB_USER) and the
// organization (REPOFLEET_ORG_NAME) may be absent at load time; commands that
// need them fail fast. Optional variables with defaults:
// REPOFLEET_GITHUB_BASE_URL (https://api.github.com),
// REPOFLEET_DEFAULT_BRANCH (master), REPOFLEET_CLONE_ROOT (fresh temp dir),
// REPOFLEET_CONCURRENCY (8).
func Load() (*Config, error) {
	token := os.Getenv("REPOFLEET_GITHUB_TOKEN")
	user := os.Getenv("REPOFLEET_GITHUB_USER")
	orgName := os.Getenv("REPOFLEET_ORG_NAME")

	baseURL := DefaultBaseURL
	if v, ok := os.LookupEnv("REPOFLEET_GITHUB_BASE_URL"); ok && v != "" {
		baseURL = v
	}

	branch := "master"
	if v, ok := os.LookupEnv("REPOFLEET_DEFAULT_BRANCH"); ok && v != "" {
		branch = v
	}

	cloneRoot := os.Getenv("REPOFLEET_CLONE_ROOT")

	concurrency := 8
	if v, ok := os.LookupEnv("REPOFLEET_CONCURRENCY"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("REPOFLEET_CONCURRENCY has invalid value %q: must be a positive integer", v)
		}
		concurrency = parsed
	}

	return &Config{
		Token:         token,
		User:          user,
		OrgName:       orgName,
		BaseURL:       baseURL,
		DefaultBranch: branch,
		CloneRoot:     cloneRoot,
		Concurrency:   concurrency,
	}, nil
}
