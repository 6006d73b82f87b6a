package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/minicross/mc/internal/dockerfile"
	"github.com/minicross/mc/internal/engine"
	"github.com/minicross/mc/internal/hostid"
	"github.com/minicross/mc/internal/mixin"
	"github.com/minicross/mc/internal/paths"
	"github.com/minicross/mc/internal/userconfig"
)

// Executes the root command.
//
// Resolves the toolchain file, loads and flattens its mixins, synthesizes
// the build specification, layers in user-config and CLI runtime parameters,
// then either prints the specification (dry run) or builds the image when
// its content tag is absent and runs the user command inside it.
func (c *rootCmd) Run(ctx context.Context) error {
	path, err := paths.Lookup(c.Machine)
	if err != nil {
		return err
	}
	slog.Debug("toolchain resolved", "path", path)

	root, err := mixin.Load(path)
	if err != nil {
		return err
	}
	slog.Debug("mixins resolved", "descendants", len(root.Children))

	id, err := hostid.Current()
	if err != nil {
		return err
	}

	df, err := dockerfile.Convert(root, id)
	if err != nil {
		return err
	}

	cfg, err := userconfig.Load()
	if err != nil {
		return err
	}
	cfg.Apply(df)

	if err := c.applyFlags(df); err != nil {
		return err
	}

	if c.DryRun {
		_, err := df.WriteTo(os.Stdout)
		return err
	}

	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	eng := engine.NewDocker()
	tag := df.Tag()

	if err := engine.Ensure(ctx, eng, tag, strings.NewReader(df.String()), c.Force); err != nil {
		return err
	}

	return eng.Run(ctx, tag, engine.RunOptions{
		Command:     c.Cmd,
		Publishes:   df.Publishes(),
		Volumes:     df.Volumes(),
		Envs:        df.Envs(),
		Workdir:     workdir,
		Interactive: isatty(os.Stdin),
	})
}

// Appends the CLI-provided publish and volume flags to the specification's
// runtime parameters.
func (c *rootCmd) applyFlags(df *dockerfile.Dockerfile) error {
	for _, raw := range c.Publish {
		p, err := mixin.ParsePublish(raw)
		if err != nil {
			return err
		}
		df.AddPublishes(p)
	}

	for _, raw := range c.Volumes {
		v, err := mixin.ParseVolume(raw)
		if err != nil {
			return err
		}
		df.AddVolumes(v)
	}

	return nil
}
