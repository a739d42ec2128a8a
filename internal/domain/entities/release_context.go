package entities

// ReleaseState is a state of the release pipeline.
type ReleaseState string

const (
	ReleaseStateInit       ReleaseState = "init"
	ReleaseStateAnalyzing  ReleaseState = "analyzing"
	ReleaseStateNoOp       ReleaseState = "noop"
	ReleaseStatePreviewing ReleaseState = "previewing"
	ReleaseStateReleasing  ReleaseState = "releasing"
	ReleaseStateDone       ReleaseState = "done"
	ReleaseStateFailed     ReleaseState = "failed"
)

// ReleaseStep names one side-effecting step of a write-mode release.
type ReleaseStep string

const (
	ReleaseStepManifest  ReleaseStep = "manifest"
	ReleaseStepChangelog ReleaseStep = "changelog"
	ReleaseStepLockfile  ReleaseStep = "lockfile"
	ReleaseStepPackage   ReleaseStep = "package"
	ReleaseStepCommit    ReleaseStep = "commit"
	ReleaseStepTag       ReleaseStep = "tag"
)

// ReleaseContext is the state threaded through a single pipeline run.
// NewVersion stays nil until the bump has been computed.
type ReleaseContext struct {
	RepositoryPath string
	WriteMode      bool
	CurrentVersion SemanticVersion
	NewVersion     *SemanticVersion
	Committer      Signature
	Changelog      string
}

// ReleaseResult reports how a pipeline run ended.
type ReleaseResult struct {
	State          ReleaseState
	States         []ReleaseState
	Bump           Severity
	CurrentVersion SemanticVersion
	NewVersion     *SemanticVersion
	Changelog      string
	CompletedSteps []ReleaseStep
	FailedStep     ReleaseStep
}
