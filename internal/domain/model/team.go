package model

import (
	"fmt"
	"sort"
	"strings"
)

// StudentTeam is one or more platform usernames treated as a single unit
// for repo and team ownership. The name is derived from the member set,
// so equal member sets always map to the same team.
type StudentTeam struct {
	Name    string
	Members []string
}

// NewStudentTeam builds a StudentTeam from its member usernames. Members
// are deduplicated and must be non-empty; the team name is the sorted
// members joined by "-" (a single-member team is named after that member).
func NewStudentTeam(members []string) (StudentTeam, error) {
	if len(members) == 0 {
		return StudentTeam{}, fmt.Errorf("student team must have at least one member")
	}

	seen := make(map[string]bool, len(members))
	unique := make([]string, 0, len(members))
	for _, m := range members {
		if m == "" {
			return StudentTeam{}, fmt.Errorf("student team member names must not be empty")
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		unique = append(unique, m)
	}

	sort.Strings(unique)
	return StudentTeam{Name: strings.Join(unique, "-"), Members: unique}, nil
}

// Team is a platform-side team as it exists on the hosting platform.
// Teams are provisioned with ensure semantics: creation that collides with
// an existing team resolves to a fetch of that team.
type Team struct {
	ID      int64
	Name    string
	Members []string
}
