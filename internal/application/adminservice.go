package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
	"github.com/ericfisherdev/repofleet/internal/domain/port/driven"
)

// defaultBranch is pushed when no branch was configured.
const defaultBranch = "master"

// AdminService orchestrates fleet provisioning: for the Cartesian product
// of master repos and student teams it computes and executes the exact set
// of idempotent remote operations (team ensure, repo create-or-fetch,
// template clone, push, cleanup).
type AdminService struct {
	api    driven.PlatformClient
	git    driven.GitClient
	branch string
}

// NewAdminService creates an AdminService pushing to the given default
// branch ("" selects "master").
func NewAdminService(api driven.PlatformClient, git driven.GitClient, branch string) *AdminService {
	if branch == "" {
		branch = defaultBranch
	}
	return &AdminService{api: api, git: git, branch: branch}
}

// SetupStudentRepos provisions one student repo per (master repo x team)
// pair and pushes each template into its derived repos. The pipeline is:
// validate, clone each template once, ensure all teams in one batch,
// create all repos in one batch, push, and remove each template's clone.
// Cleanup runs for every cloned template regardless of later failures.
func (s *AdminService) SetupStudentRepos(ctx context.Context, masterRepoURLs []string, teams []model.StudentTeam) error {
	if err := validateMasterURLsAndTeams(masterRepoURLs, teams); err != nil {
		return err
	}

	start := time.Now()
	slog.Info("setting up student repos",
		"master_repos", len(masterRepoURLs), "teams", len(teams))

	masters, clonePaths, cleanup, err := s.cloneMasters(ctx, masterRepoURLs)
	defer cleanup()
	if err != nil {
		return err
	}

	// Team ensure completes fully before any repo creation references its
	// team id; the synchronizer never invents ids.
	platformTeams, err := s.api.EnsureTeamsAndMembers(ctx, teams)
	if err != nil {
		return fmt.Errorf("ensuring teams: %w", err)
	}

	infos := buildRepoInfos(masters, teams, platformTeams)
	if _, err := s.api.CreateRepos(ctx, infos); err != nil {
		return fmt.Errorf("creating student repos: %w", err)
	}

	if err := s.pushToStudentRepos(ctx, masters, clonePaths, teams); err != nil {
		return err
	}

	slog.Info("student repos set up", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// UpdateStudentRepos refreshes existing student repos with their template's
// current content. It runs the identical validation and clone/push/cleanup
// pipeline as SetupStudentRepos, but assumes teams and repos already exist.
func (s *AdminService) UpdateStudentRepos(ctx context.Context, masterRepoURLs []string, teams []model.StudentTeam) error {
	if err := validateMasterURLsAndTeams(masterRepoURLs, teams); err != nil {
		return err
	}

	slog.Info("updating student repos",
		"master_repos", len(masterRepoURLs), "teams", len(teams))

	masters, clonePaths, cleanup, err := s.cloneMasters(ctx, masterRepoURLs)
	defer cleanup()
	if err != nil {
		return err
	}

	return s.pushToStudentRepos(ctx, masters, clonePaths, teams)
}

// cloneMasters parses and clones each master repo exactly once (the
// template is cloned once and pushed many times). It returns a cleanup
// function removing every clone that was made; callers defer it so
// per-template cleanup runs even when a later stage fails.
func (s *AdminService) cloneMasters(ctx context.Context, masterRepoURLs []string) ([]model.MasterRepo, map[string]string, func(), error) {
	masters := make([]model.MasterRepo, 0, len(masterRepoURLs))
	clonePaths := make(map[string]string, len(masterRepoURLs))

	cleanup := func() {
		for name, path := range clonePaths {
			if err := s.git.RemoveClone(path); err != nil {
				slog.Error("removing clone failed", "master_repo", name, "path", path, "error", err)
			}
		}
	}

	for _, rawURL := range masterRepoURLs {
		master, err := model.ParseMasterRepo(rawURL)
		if err != nil {
			return nil, nil, cleanup, err
		}
		masters = append(masters, master)
	}

	for _, master := range masters {
		path, err := s.git.Clone(ctx, master.URL)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("cloning master repo %s: %w", master.Name, err)
		}
		clonePaths[master.Name] = path
	}

	return masters, clonePaths, cleanup, nil
}

// pushToStudentRepos expands the (master x team) product into push specs in
// master-major, team-minor order and executes them as one batch. Failed
// pushes are reported together after the batch.
func (s *AdminService) pushToStudentRepos(ctx context.Context, masters []model.MasterRepo, clonePaths map[string]string, teams []model.StudentTeam) error {
	masterNames := make([]string, len(masters))
	for i, master := range masters {
		masterNames[i] = master.Name
	}

	remoteURLs, err := s.api.GetRepoURLs(masterNames, true, teamNames(teams))
	if err != nil {
		return fmt.Errorf("building student repo urls: %w", err)
	}

	// Remote URLs carry embedded credentials, so failures are reported by
	// repo name, never by URL.
	specs := make([]model.PushSpec, 0, len(remoteURLs))
	repoNames := make(map[string]string, len(remoteURLs))
	for i, master := range masters {
		for j, team := range teams {
			remoteURL := remoteURLs[i*len(teams)+j]
			repoNames[remoteURL] = model.GenerateRepoName(team.Name, master.Name)
			specs = append(specs, model.PushSpec{
				LocalPath: clonePaths[master.Name],
				RemoteURL: remoteURL,
				Branch:    s.branch,
			})
		}
	}

	failed := s.git.Push(ctx, specs)
	if len(failed) > 0 {
		names := make([]string, len(failed))
		for i, spec := range failed {
			names[i] = repoNames[spec.RemoteURL]
		}
		return fmt.Errorf("%d of %d pushes failed: %s", len(failed), len(specs), strings.Join(names, ", "))
	}

	slog.Info("student repos pushed", "specs", len(specs))
	return nil
}

// buildRepoInfos expands the (master x team) product into desired-state
// repo descriptors in master-major, team-minor order, wiring in the team
// ids returned by the platform.
func buildRepoInfos(masters []model.MasterRepo, teams []model.StudentTeam, platformTeams []model.Team) []model.RepoInfo {
	idsByName := make(map[string]int64, len(platformTeams))
	for _, team := range platformTeams {
		idsByName[team.Name] = team.ID
	}

	infos := make([]model.RepoInfo, 0, len(masters)*len(teams))
	for _, master := range masters {
		for _, team := range teams {
			infos = append(infos, model.RepoInfo{
				Name:        model.GenerateRepoName(team.Name, master.Name),
				Description: fmt.Sprintf("%s created for %s", master.Name, team.Name),
				Private:     true,
				TeamID:      idsByName[team.Name],
			})
		}
	}
	return infos
}
