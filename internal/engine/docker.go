package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Default binary driving the external engine.
const dockerBin = "docker"

// Drives the docker CLI as a subprocess.
//
// Build and run inherit the process stdio, so engine diagnostics and the
// interactive session go straight to the controlling terminal. Every
// invocation blocks until the subprocess exits; cancellation happens at the
// process level through the context.
type Docker struct {
	bin string
}

// Creates a [Docker] engine using the docker binary from PATH.
func NewDocker() *Docker {
	return &Docker{bin: dockerBin}
}

// Reports whether an image with the given tag exists in the local store.
//
// Queries the store with "docker images -q"; a non-zero exit or empty output
// means the image is absent.
func (d *Docker) Exists(ctx context.Context, tag string) (bool, error) {
	out, err := exec.CommandContext(ctx, d.bin, "images", "-q", tag).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("querying image store: %w", err)
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

// Builds an image from the specification text streamed over stdin.
//
// The build context is the working directory, so COPY instructions resolve
// against it. Engine output is inherited.
func (d *Docker) Build(ctx context.Context, tag string, spec io.Reader) error {
	args := buildArgs(tag)
	slog.Debug("exec", "bin", d.bin, "args", args)

	cmd := exec.CommandContext(ctx, d.bin, args...)
	cmd.Stdin = spec
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w %s: %v", ErrBuild, tag, err)
	}
	return nil
}

// Runs the user command in the tagged image.
//
// The container is removed on exit. The working directory is bind-mounted at
// the identical path and set as the container's cwd; a host display is
// forwarded when present; every accumulated publish, volume, and env entry
// becomes a repeated paired flag before the tag and trailing command.
func (d *Docker) Run(ctx context.Context, tag string, opts RunOptions) error {
	args := runArgs(tag, opts, os.Getenv("DISPLAY"))
	slog.Debug("exec", "bin", d.bin, "args", args)

	cmd := exec.CommandContext(ctx, d.bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrRun, err)
	}
	return nil
}

// Assembles the argument list for a build invocation. The "-f -" makes the
// engine read the specification from stdin.
func buildArgs(tag string) []string {
	return []string{"image", "build", "--tag", tag, "-f", "-", "."}
}

// Assembles the argument list for a run invocation.
func runArgs(tag string, opts RunOptions, display string) []string {
	args := []string{
		"run", "--rm",
		"-v", opts.Workdir + ":" + opts.Workdir,
		"-w", opts.Workdir,
	}

	if opts.Interactive {
		args = append(args, "-it")
	}

	if display != "" {
		args = append(args,
			"-e", "DISPLAY="+display,
			"-v", "/tmp/.X11-unix:/tmp/.X11-unix",
		)
	}

	for _, p := range opts.Publishes {
		args = append(args, "-p", p.String())
	}
	for _, v := range opts.Volumes {
		args = append(args, "-v", v.String())
	}
	for _, e := range opts.Envs {
		args = append(args, "-e", e.Key+"="+e.Value)
	}

	args = append(args, tag)
	return append(args, opts.Command...)
}
