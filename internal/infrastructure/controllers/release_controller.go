package controllers

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/semantic/internal/domain/commands"
	"github.com/rios0rios0/semantic/internal/domain/entities"
)

// ReleaseController handles the root command: analyze a repository and
// preview or perform its next release.
type ReleaseController struct {
	command   commands.Release
	lookupEnv func(string) (string, bool)
}

// NewReleaseController creates a new ReleaseController reading the process environment.
func NewReleaseController(command commands.Release) *ReleaseController {
	return NewReleaseControllerWithEnv(command, os.LookupEnv)
}

// NewReleaseControllerWithEnv creates a new ReleaseController reading the
// environment through lookupEnv.
func NewReleaseControllerWithEnv(
	command commands.Release,
	lookupEnv func(string) (string, bool),
) *ReleaseController {
	return &ReleaseController{command: command, lookupEnv: lookupEnv}
}

// GetBind returns the Cobra command metadata for the release controller.
func (it *ReleaseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "semantic",
		Short: "Semantic releases driven by conventional commits",
		Long: `Analyzes the commits since the last release tag, derives the next
semantic version from their conventional commit types and renders a changelog.

Without --write the release is only previewed. With --write the manifest,
changelog and lockfile are updated, the package is built, and a release commit
and an annotated tag v<version> are created. When a CI environment variable is
present the release is always previewed.`,
	}
}

// AddFlags adds the release flags to the given Cobra command.
func (it *ReleaseController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("path", "p", ".", "Specifies the repository path")
	cmd.Flags().BoolP("write", "w", false, "Run with writing the changes afterwards")
	cmd.Flags().StringP("config", "c", "", "Path to config file (default: auto-detect)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
}

// Execute runs a release with the flags of cmd.
func (it *ReleaseController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	repoDir, _ := cmd.Flags().GetString("path")
	write, _ := cmd.Flags().GetBool("write")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(configPath, repoDir)
	if err != nil {
		return err
	}

	ci := settings.CIDetected(it.lookupEnv)
	if ci {
		logger.Debugf("CI detected through one of %v", settings.CIVariables)
	}

	result, err := it.command.Execute(ctx, commands.ReleaseOptions{
		RepoDir:  repoDir,
		Write:    write,
		CI:       ci,
		Settings: settings,
	})
	if err != nil {
		return err
	}

	logger.Debugf("Release finished in state %s", result.State)
	return nil
}

// loadSettings loads the explicit config file, or the auto-detected one,
// falling back to the defaults when none exists.
func loadSettings(configPath, repoDir string) (*entities.Settings, error) {
	if configPath == "" {
		found, err := entities.FindConfigFile(repoDir)
		if errors.Is(err, entities.ErrConfigNotFound) {
			return entities.NewDefaultSettings(), nil
		}
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}
