package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/semantic/internal/infrastructure/controllers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // build-time injected

func buildRootCommand(releaseController *controllers.ReleaseController) *cobra.Command {
	bind := releaseController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          releaseController.Execute,
	}
	cmd.SetVersionTemplate("semantic -- v{{.Version}}\n")

	releaseController.AddFlags(cmd)
	return cmd
}

func newFormatter() logger.Formatter {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	return &logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	}
}

// configureLogger sends progress to stdout, the changelog preview shares the stream.
func configureLogger(stdout io.Writer, debug bool) {
	logger.SetFormatter(newFormatter())
	logger.SetOutput(stdout)
	if debug {
		logger.SetLevel(logger.DebugLevel)
	}
}

// reportError writes the fatal diagnostic and its hints to stderr.
func reportError(stderr io.Writer, err error) {
	errLogger := logger.New()
	errLogger.SetFormatter(newFormatter())
	errLogger.SetOutput(stderr)
	errLogger.Errorf("Error executing 'semantic': %s", err)
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprintln(stderr, hints)
	}
}

func main() {
	configureLogger(os.Stdout, os.Getenv("DEBUG") == "true")

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(appContext.GetReleaseController())

	if err := cobraRoot.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
