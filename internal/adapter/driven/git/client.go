// Package git implements the GitClient port by shelling out to the git
// binary. Clone and push are treated as atomic subprocess operations; any
// non-zero exit surfaces as a *GitError carrying the captured output.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
	"github.com/ericfisherdev/repofleet/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitClient = (*Client)(nil)

// defaultConcurrency bounds the parallel push pool. Pushes are subprocess
// and network bound, so a small pool hides most of the serial latency.
const defaultConcurrency = 8

// GitError is returned when a git subprocess exits non-zero.
type GitError struct {
	Args   []string
	Stderr string
	err    error
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.err)
}

func (e *GitError) Unwrap() error { return e.err }

// Client runs git operations rooted in a private clone directory. The
// clone root is unique per invocation, so concurrent invocations never
// collide on local paths, while paths stay deterministic per URL within
// one invocation.
type Client struct {
	GitPath     string
	CloneRoot   string
	Concurrency int
}

// NewClient creates a git client. With an empty cloneRoot a fresh
// temporary directory is created for this invocation.
func NewClient(cloneRoot string) (*Client, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("locating git executable: %w", err)
	}

	if cloneRoot == "" {
		cloneRoot, err = os.MkdirTemp("", "repofleet-clones-*")
		if err != nil {
			return nil, fmt.Errorf("creating clone root: %w", err)
		}
	}

	return &Client{
		GitPath:     gitPath,
		CloneRoot:   cloneRoot,
		Concurrency: defaultConcurrency,
	}, nil
}

// Clone clones url into CloneRoot/<repo base name> and returns that path.
// The target path is deterministic for the URL within this invocation.
func (c *Client) Clone(ctx context.Context, url string) (string, error) {
	repo, err := model.ParseMasterRepo(url)
	if err != nil {
		return "", err
	}
	target := filepath.Join(c.CloneRoot, repo.Name)

	if err := c.run(ctx, "", "clone", url, target); err != nil {
		return "", err
	}

	slog.Info("cloned", "url", url, "path", target)
	return target, nil
}

// Push executes every push spec through a bounded worker pool and returns
// the specs that failed. Partial failure is reported as data, not as an
// error, so callers can name the failed pushes without aborting the rest.
func (c *Client) Push(ctx context.Context, specs []model.PushSpec) []model.PushSpec {
	start := time.Now()

	var mu sync.Mutex
	var failed []model.PushSpec

	g := &errgroup.Group{}
	g.SetLimit(c.concurrency())

	for _, spec := range specs {
		g.Go(func() error {
			err := c.run(ctx, spec.LocalPath, "push", spec.RemoteURL, spec.Branch)
			if err != nil {
				mu.Lock()
				failed = append(failed, spec)
				mu.Unlock()
				slog.Error("push failed", "remote", redactURL(spec.RemoteURL), "branch", spec.Branch, "error", err)
				return nil
			}
			slog.Debug("pushed", "remote", redactURL(spec.RemoteURL), "branch", spec.Branch)
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("push batch complete",
		"specs", len(specs),
		"failed", len(failed),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return failed
}

// RemoveClone removes a clone directory previously returned by Clone.
// Paths outside the clone root are refused.
func (c *Client) RemoveClone(path string) error {
	rel, err := filepath.Rel(c.CloneRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %q: outside clone root %q", path, c.CloneRoot)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing clone %q: %w", path, err)
	}
	slog.Debug("removed clone", "path", path)
	return nil
}

// run executes one git command, optionally inside dir, capturing combined
// output for diagnostics.
func (c *Client) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return &GitError{Args: args, Stderr: string(output), err: err}
	}
	return nil
}

func (c *Client) concurrency() int {
	if c.Concurrency >= 1 {
		return c.Concurrency
	}
	return defaultConcurrency
}

// redactURL strips embedded credentials from a URL before logging.
func redactURL(rawURL string) string {
	at := strings.Index(rawURL, "@")
	scheme := strings.Index(rawURL, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return rawURL
	}
	return rawURL[:scheme+3] + "***" + rawURL[at:]
}
