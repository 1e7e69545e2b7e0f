package model

// GenerateRepoName builds the name of a student repo from the owning
// team's name and the master repo's base name. The "<team>-<master>"
// shape is a hard external contract: other tools parse these names, so
// neither the separator nor the ordering may change.
func GenerateRepoName(teamName, masterBaseName string) string {
	return teamName + "-" + masterBaseName
}

// GenerateRepoNames expands the Cartesian product of teams and master repo
// base names into student repo names, in master-major, team-minor order
// (all teams for the first master, then all teams for the second, ...).
// The fixed order keeps batch operations and their logs deterministic.
func GenerateRepoNames(teamNames, masterBaseNames []string) []string {
	names := make([]string, 0, len(teamNames)*len(masterBaseNames))
	for _, master := range masterBaseNames {
		for _, team := range teamNames {
			names = append(names, GenerateRepoName(team, master))
		}
	}
	return names
}
