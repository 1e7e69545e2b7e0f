package model

// Repo is a repository as it exists on the hosting platform.
type Repo struct {
	Name        string
	Description string
	Private     bool
	HTMLURL     string
}

// RepoInfo is the desired-state descriptor sent to the platform to create
// one student repo. TeamID must reference a team that was actually created
// or already existed on the platform.
type RepoInfo struct {
	Name        string
	Description string
	Private     bool
	TeamID      int64
}
