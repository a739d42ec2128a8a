package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/semantic/internal/domain/entities"
	"github.com/rios0rios0/semantic/internal/domain/repositories"
)

const previewSeparator = "===================================="

const committerHint = `A release commit needs a committer name and email address.
Committer information is taken from the following environment variables, if set:

GIT_COMMITTER_NAME
GIT_COMMITTER_EMAIL

Otherwise the git config is tried in the following order:

Local repository config
User config
System config`

// Release is the interface for the release command.
type Release interface {
	Execute(ctx context.Context, opts ReleaseOptions) (*entities.ReleaseResult, error)
}

// ReleaseOptions holds runtime options for a single release run.
// CI is resolved once by the caller; the command never reads the environment.
type ReleaseOptions struct {
	RepoDir  string
	Write    bool
	CI       bool
	Settings *entities.Settings
}

// StepError reports the write-mode step that halted a release.
type StepError struct {
	Step entities.ReleaseStep
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("release step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// releaseStep is one ordered side effect of a write-mode release.
type releaseStep struct {
	name    entities.ReleaseStep
	message string
	run     func(ctx context.Context) error
}

// ReleaseCommand drives a release: it analyzes the commits since the last
// release and then either previews or performs the release.
type ReleaseCommand struct {
	gitOpener  repositories.GitOpener
	projects   repositories.ProjectDetector
	changelogs repositories.ChangelogRepository
	now        func() time.Time
}

// NewReleaseCommand creates a new ReleaseCommand.
func NewReleaseCommand(
	gitOpener repositories.GitOpener,
	projects repositories.ProjectDetector,
	changelogs repositories.ChangelogRepository,
) *ReleaseCommand {
	return &ReleaseCommand{
		gitOpener:  gitOpener,
		projects:   projects,
		changelogs: changelogs,
		now:        time.Now,
	}
}

// Execute runs the pipeline once. A nil error with a NoOp or Done state is a
// successful run; any error leaves the result in the Failed state.
func (it *ReleaseCommand) Execute(ctx context.Context, opts ReleaseOptions) (*entities.ReleaseResult, error) {
	result := &entities.ReleaseResult{}
	it.transition(result, entities.ReleaseStateInit)

	settings := opts.Settings
	if settings == nil {
		settings = entities.NewDefaultSettings()
	}

	writeMode := opts.Write && !opts.CI
	if opts.Write && opts.CI {
		logger.Warn("CI environment detected, the release is only previewed")
	}

	logger.Info("Analyzing your repository")
	releaseCtx, gitRepo, project, err := it.initialize(opts.RepoDir, writeMode, settings)
	if err != nil {
		return it.fail(result, err)
	}
	result.CurrentVersion = releaseCtx.CurrentVersion
	logger.Infof("Current version: %s", releaseCtx.CurrentVersion)

	commits, err := it.commitRange(gitRepo)
	if err != nil {
		return it.fail(result, err)
	}

	it.transition(result, entities.ReleaseStateAnalyzing)

	logger.Info("Analyzing commits")
	severities := make([]entities.Severity, 0, len(commits))
	for _, commit := range commits {
		severity := entities.ClassifyCommit(commit.Message)
		logger.Debugf("%s %s -> %s", commit.ShortHash(), commit.Subject(), severity)
		severities = append(severities, severity)
	}
	result.Bump = entities.DecideBump(severities)
	logger.Infof("Commits analyzed. Bump %s be %s", modalVerb(releaseCtx.WriteMode), result.Bump)

	newVersion, ok := entities.ApplyBump(releaseCtx.CurrentVersion, result.Bump)
	if !ok {
		logger.Info("No version bump. Nothing to do.")
		it.transition(result, entities.ReleaseStateNoOp)
		return result, nil
	}
	releaseCtx.NewVersion = &newVersion
	result.NewVersion = &newVersion

	releaseCtx.Changelog = entities.RenderChangelog(newVersion, it.now(), commits)
	result.Changelog = releaseCtx.Changelog

	if !releaseCtx.WriteMode {
		it.transition(result, entities.ReleaseStatePreviewing)
		preview(releaseCtx)
		it.transition(result, entities.ReleaseStateDone)
		return result, nil
	}

	it.transition(result, entities.ReleaseStateReleasing)
	logger.Infof("New version: %s", newVersion)
	for _, step := range it.releaseSteps(releaseCtx, gitRepo, project, settings) {
		logger.Info(step.message)
		if stepErr := step.run(ctx); stepErr != nil {
			result.FailedStep = step.name
			return it.fail(result, &StepError{Step: step.name, Err: stepErr})
		}
		result.CompletedSteps = append(result.CompletedSteps, step.name)
	}

	logger.Infof("Released %s", newVersion.Tag())
	it.transition(result, entities.ReleaseStateDone)
	return result, nil
}

// initialize resolves everything the analysis needs. Nothing is written.
func (it *ReleaseCommand) initialize(
	repoDir string,
	writeMode bool,
	settings *entities.Settings,
) (*entities.ReleaseContext, repositories.GitRepository, repositories.ProjectRepository, error) {
	absDir, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid path")
	}

	gitRepo, err := it.gitOpener.Open(absDir)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "could not open the git repository")
	}

	project, err := it.projects.Detect(absDir, settings.Ecosystem)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Infof("Detected project type: %s", project.Name())

	rawVersion, err := project.ReadVersion(absDir)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "reading `%s` failed", project.ManifestFile())
	}
	currentVersion, err := entities.ParseSemanticVersion(rawVersion)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "`%s` does not declare a valid version", project.ManifestFile())
	}

	committer, err := gitRepo.Signature()
	if err != nil {
		return nil, nil, nil, errors.WithHint(
			errors.Wrap(err, "failed to get the committer's name and email address"),
			committerHint,
		)
	}

	return &entities.ReleaseContext{
		RepositoryPath: absDir,
		WriteMode:      writeMode,
		CurrentVersion: currentVersion,
		Committer:      committer,
	}, gitRepo, project, nil
}

func (it *ReleaseCommand) commitRange(gitRepo repositories.GitRepository) ([]entities.CommitRecord, error) {
	tag, err := gitRepo.LatestReleaseTag()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve the latest release tag")
	}
	if tag == "" {
		logger.Info("No release tag found, analyzing the whole history")
	} else {
		logger.Infof("Latest release tag: %s", tag)
	}

	commits, err := gitRepo.CommitsSince(tag)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list commits")
	}
	logger.Debugf("%d commit(s) in range", len(commits))
	return commits, nil
}

// releaseSteps returns the write-mode side effects in execution order.
// The manifest and changelog are validated by the lockfile and package steps
// before anything is committed or tagged.
func (it *ReleaseCommand) releaseSteps(
	releaseCtx *entities.ReleaseContext,
	gitRepo repositories.GitRepository,
	project repositories.ProjectRepository,
	settings *entities.Settings,
) []releaseStep {
	repoDir := releaseCtx.RepositoryPath
	version := *releaseCtx.NewVersion

	return []releaseStep{
		{
			name:    entities.ReleaseStepManifest,
			message: fmt.Sprintf("Writing `%s`", project.ManifestFile()),
			run: func(_ context.Context) error {
				return project.WriteVersion(repoDir, version)
			},
		},
		{
			name:    entities.ReleaseStepChangelog,
			message: "Writing Changelog",
			run: func(_ context.Context) error {
				content, err := it.changelogs.Read(repoDir, settings.ChangelogFile)
				if err != nil {
					return err
				}
				updated := entities.InsertChangelogRelease(content, releaseCtx.Changelog)
				return it.changelogs.Write(repoDir, settings.ChangelogFile, updated)
			},
		},
		{
			name:    entities.ReleaseStepLockfile,
			message: "Updating lockfile",
			run: func(ctx context.Context) error {
				return project.UpdateLockfile(ctx, repoDir)
			},
		},
		{
			name:    entities.ReleaseStepPackage,
			message: "Packaging",
			run: func(ctx context.Context) error {
				return project.Package(ctx, repoDir)
			},
		},
		{
			name:    entities.ReleaseStepCommit,
			message: "Committing files",
			run: func(_ context.Context) error {
				paths := []string{project.ManifestFile(), settings.ChangelogFile, project.LockFile()}
				return gitRepo.CommitFiles(paths, settings.ReleaseCommitMessage(version), releaseCtx.Committer)
			},
		},
		{
			name:    entities.ReleaseStepTag,
			message: "Creating annotated git tag",
			run: func(_ context.Context) error {
				return gitRepo.CreateTag(version.Tag(), releaseCtx.Changelog, releaseCtx.Committer)
			},
		},
	}
}

func (it *ReleaseCommand) transition(result *entities.ReleaseResult, state entities.ReleaseState) {
	logger.Debugf("Release state: %s -> %s", result.State, state)
	result.State = state
	result.States = append(result.States, state)
}

func (it *ReleaseCommand) fail(result *entities.ReleaseResult, err error) (*entities.ReleaseResult, error) {
	it.transition(result, entities.ReleaseStateFailed)
	if len(result.CompletedSteps) > 0 {
		logger.Warnf("Completed steps are not rolled back: %v", result.CompletedSteps)
	}
	return result, err
}

// preview prints what a write-mode run would do.
func preview(releaseCtx *entities.ReleaseContext) {
	logger.Infof("[DRY RUN] New version would be: %s", releaseCtx.NewVersion)
	logger.Info("[DRY RUN] Would write the following Changelog:")
	pterm.Println(pterm.LightCyan(previewSeparator))
	pterm.Println(releaseCtx.Changelog)
	pterm.Println(pterm.LightCyan(previewSeparator))
	logger.Infof("[DRY RUN] Would create annotated git tag %s", releaseCtx.NewVersion.Tag())
}

func modalVerb(writeMode bool) string {
	if writeMode {
		return "will"
	}
	return "would"
}
