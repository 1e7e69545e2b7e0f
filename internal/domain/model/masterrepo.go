package model

import (
	"fmt"
	"strings"
)

// MasterRepo is a template repository whose content is pushed into every
// student repo derived from it. Name is derived deterministically from the
// URL and never changes afterwards.
type MasterRepo struct {
	URL  string
	Name string
}

// ParseMasterRepo derives a MasterRepo from its clone URL. The name is the
// last path segment of the URL with any trailing ".git" stripped.
func ParseMasterRepo(rawURL string) (MasterRepo, error) {
	trimmed := strings.TrimRight(rawURL, "/")
	name := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		name = trimmed[idx+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return MasterRepo{}, fmt.Errorf("cannot derive repo name from url %q", rawURL)
	}
	return MasterRepo{URL: rawURL, Name: name}, nil
}
