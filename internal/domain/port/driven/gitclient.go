package driven

import (
	"context"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
)

// GitClient defines the driven port for local version-control operations.
// Implementations shell out to git; the core only depends on these three
// contracts.
type GitClient interface {
	// Clone clones url into a local directory whose path is deterministic
	// for the URL within one invocation, and returns that path.
	Clone(ctx context.Context, url string) (string, error)

	// Push executes every push spec and returns the specs that failed.
	// A partial failure is not an error for the batch: callers report the
	// failed specs and carry on with the rest.
	Push(ctx context.Context, specs []model.PushSpec) []model.PushSpec

	// RemoveClone removes a local clone directory previously returned by
	// Clone.
	RemoveClone(path string) error
}
