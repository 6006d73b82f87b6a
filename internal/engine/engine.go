package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/minicross/mc/internal/dockerfile"
	"github.com/minicross/mc/internal/mixin"
)

// Parameters forwarded to the engine's run invocation.
type RunOptions struct {
	Command     []string             // User command executed after the container is up.
	Publishes   []mixin.Publish      // Forwarded as repeated -p flags.
	Volumes     []mixin.Volume       // Forwarded as repeated -v flags.
	Envs        []dockerfile.EnvVar  // Forwarded as repeated -e flags.
	Workdir     string               // Host directory bind-mounted at the identical path and set as cwd.
	Interactive bool                 // Allocate a terminal and keep stdin open.
}

// The contract implemented by the external container engine.
type Engine interface {

	// Reports whether an image with the given tag exists in the image store.
	Exists(ctx context.Context, tag string) (bool, error)

	// Builds an image tagged with tag from the specification text read
	// from spec. A non-zero engine exit is an error.
	Build(ctx context.Context, tag string, spec io.Reader) error

	// Runs the user command in the tagged image with forwarded runtime
	// parameters. Blocks until the command exits.
	Run(ctx context.Context, tag string, opts RunOptions) error
}

// Builds the image unless an image with the tag already exists.
//
// The skip is the whole build cache: the tag is derived from the canonical
// specification text, so an existing tag means an identical specification
// was built before. force bypasses the existence check entirely.
func Ensure(ctx context.Context, e Engine, tag string, spec io.Reader, force bool) error {
	if force {
		slog.Info("forcing rebuild of image", "tag", tag)
	} else {
		exists, err := e.Exists(ctx, tag)
		if err != nil {
			return err
		}
		if exists {
			slog.Info("image already exists, skipping build", "tag", tag)
			return nil
		}
	}

	slog.Info("building image", "tag", tag)
	return e.Build(ctx, tag, spec)
}
