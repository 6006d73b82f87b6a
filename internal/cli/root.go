package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/minicross/mc/internal"
)

// Represents the root command for the mc tool.
var RootCmd rootCmd

type rootCmd struct {
	DryRun  bool             `short:"d" help:"Print the generated Dockerfile instead of building and running."`
	Force   bool             `short:"F" help:"Force a rebuild of the image."`
	Volumes []string         `short:"v" help:"Volumes forwarded to the container run." placeholder:"HOST:MACHINE[:OPTS]"`
	Publish []string         `short:"p" help:"Published ports forwarded to the container run." placeholder:"[IP:]HOST:MACHINE"`
	Quiet   bool             `help:"Suppress informational output."`
	Debug   bool             `help:"Enable debug output."`
	Version kong.VersionFlag `help:"Show version information."`

	Machine string   `arg:"" optional:"" help:"Toolchain name. Defaults to the unnamed toolchain."`
	Cmd     []string `arg:"" optional:"" passthrough:"" help:"Command executed after the container is up."`
}

// Parses arguments, configures logging, and runs the build-and-run flow.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Reproducible containerized toolchains.\n\nResolves a mixin toolchain description, builds the image when its content changed, and runs a command inside it."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelWarn
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: !isatty(os.Stderr),
	})
	slog.SetDefault(slog.New(handler).WithGroup(internal.Name))
}

// Whether the given file is an interactive terminal.
func isatty(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
