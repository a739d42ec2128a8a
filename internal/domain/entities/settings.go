package entities

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultChangelogFile = "CHANGELOG.md"
	DefaultCommitMessage = "chore(release): bump version to " + VersionPlaceholder
	VersionPlaceholder   = "{{version}}"
)

// ErrConfigNotFound is returned by FindConfigFile when no settings file exists.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings holds the optional per-repository configuration.
type Settings struct {
	ChangelogFile string   `yaml:"changelog_file"`
	Ecosystem     string   `yaml:"ecosystem"`
	CIVariables   []string `yaml:"ci_variables"`
	CommitMessage string   `yaml:"commit_message"`
}

// NewDefaultSettings returns the settings used when no file is present.
func NewDefaultSettings() *Settings {
	return &Settings{
		ChangelogFile: DefaultChangelogFile,
		CIVariables:   []string{"CI"},
		CommitMessage: DefaultCommitMessage,
	}
}

// NewSettings reads and parses a settings file, expanding environment
// variables and filling in defaults for omitted keys.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %q", path)
	}

	settings := NewDefaultSettings()
	var parsed Settings
	if unmarshalErr := yaml.Unmarshal(data, &parsed); unmarshalErr != nil {
		return nil, errors.Wrap(unmarshalErr, "failed to parse config file")
	}

	if parsed.ChangelogFile != "" {
		settings.ChangelogFile = expandEnv(parsed.ChangelogFile)
	}
	if parsed.Ecosystem != "" {
		settings.Ecosystem = expandEnv(parsed.Ecosystem)
	}
	if len(parsed.CIVariables) > 0 {
		settings.CIVariables = parsed.CIVariables
	}
	if parsed.CommitMessage != "" {
		settings.CommitMessage = expandEnv(parsed.CommitMessage)
	}

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches the repository root and then the standard
// locations for a settings file. Returns the first path found.
func FindConfigFile(repoDir string) (string, error) {
	locations := []string{repoDir, filepath.Join(repoDir, ".config")}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".semantic.yaml",
		".semantic.yml",
		"semantic.yaml",
		"semantic.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

// ReleaseCommitMessage returns the message of the release commit.
func (s *Settings) ReleaseCommitMessage(version SemanticVersion) string {
	return strings.ReplaceAll(s.CommitMessage, VersionPlaceholder, version.String())
}

// CIDetected reports whether any configured CI variable is present in the
// environment described by lookup. The value itself is irrelevant.
func (s *Settings) CIDetected(lookup func(string) (string, bool)) bool {
	for _, name := range s.CIVariables {
		if _, ok := lookup(name); ok {
			return true
		}
	}
	return false
}

func (s *Settings) validate() error {
	if filepath.IsAbs(s.ChangelogFile) || strings.HasPrefix(filepath.Clean(s.ChangelogFile), "..") {
		return errors.Newf("changelog_file must be relative to the repository: %q", s.ChangelogFile)
	}
	if !strings.Contains(s.CommitMessage, VersionPlaceholder) {
		return errors.Newf("commit_message must contain %s", VersionPlaceholder)
	}
	return nil
}

// expandEnv expands ${ENV_VAR} references, unset variables become empty.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
