package toolchain

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
)

// Tool is an external build tool invoked in a repository directory.
type Tool struct {
	Name     string   // binary name looked up in PATH (e.g. "cargo")
	Binary   string   // explicit binary path, skips the lookup when set
	Homes    []string // directories under $HOME to try after PATH (e.g. ".cargo/bin")
	Prefix   string   // log prefix (e.g. "[cargo]")
	ExtraEnv []string // appended to the process environment
}

// Run executes the tool with args inside dir and returns its combined output.
// A non-zero exit is reported together with the tool's output.
func (t Tool) Run(ctx context.Context, dir string, args ...string) (string, error) {
	binary, err := t.find()
	if err != nil {
		return "", err
	}

	commandLine := strings.TrimSpace(t.Name + " " + strings.Join(args, " "))
	logger.Debugf("%s Running `%s` in %s", t.Prefix, commandLine, dir)

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), t.ExtraEnv...)

	output, runErr := cmd.CombinedOutput()
	outputStr := string(output)
	logger.Debugf("%s `%s` output:\n%s", t.Prefix, commandLine, outputStr)

	if runErr != nil {
		return outputStr, errors.Wrapf(runErr, "`%s` failed\nOutput:\n%s", commandLine, outputStr)
	}
	return outputStr, nil
}

// find locates the tool binary on the system.
func (t Tool) find() (string, error) {
	if t.Binary != "" {
		return t.Binary, nil
	}

	// First, try the standard PATH lookup
	if path, err := exec.LookPath(t.Name); err == nil {
		return path, nil
	}

	// Then the per-user installation directories
	home, _ := os.UserHomeDir()
	if home != "" {
		for _, dir := range t.Homes {
			candidate := filepath.Join(home, dir, t.Name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	return "", errors.Newf("%s binary not found in PATH or common locations", t.Name)
}
