package git

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/semantic/internal/domain/entities"
	"github.com/rios0rios0/semantic/internal/domain/repositories"
)

const (
	envCommitterName  = "GIT_COMMITTER_NAME"
	envCommitterEmail = "GIT_COMMITTER_EMAIL"
)

// ErrNoCommitterIdentity is returned when neither the environment nor the git
// config provide a committer name and email.
var ErrNoCommitterIdentity = errors.New("no committer identity configured")

// Opener opens repositories with go-git.
type Opener struct {
	lookupEnv func(string) (string, bool)
}

// NewOpener creates an Opener reading committer overrides from the process environment.
func NewOpener() *Opener {
	return &Opener{lookupEnv: os.LookupEnv}
}

// NewOpenerWithEnv creates an Opener reading committer overrides through lookupEnv.
func NewOpenerWithEnv(lookupEnv func(string) (string, bool)) *Opener {
	return &Opener{lookupEnv: lookupEnv}
}

// Open opens the repository containing path. path may be a subdirectory of
// the worktree, paths given to CommitFiles are then relative to it.
func (it *Opener) Open(path string) (repositories.GitRepository, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "invalid path")
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open worktree")
	}
	return &Repository{
		repo:      repo,
		root:      worktree.Filesystem.Root(),
		dir:       dir,
		lookupEnv: it.lookupEnv,
	}, nil
}

// Repository implements repositories.GitRepository on top of go-git.
type Repository struct {
	repo      *git.Repository
	root      string // worktree root
	dir       string // directory the repository was opened from
	lookupEnv func(string) (string, bool)
}

var _ repositories.GitRepository = (*Repository)(nil)

// Signature resolves the committer from GIT_COMMITTER_NAME/GIT_COMMITTER_EMAIL,
// falling back to the merged local, global and system git config.
func (it *Repository) Signature() (entities.Signature, error) {
	name, _ := it.lookupEnv(envCommitterName)
	email, _ := it.lookupEnv(envCommitterEmail)

	if name == "" || email == "" {
		cfg, err := it.repo.ConfigScoped(config.SystemScope)
		if err != nil {
			return entities.Signature{}, errors.Wrap(err, "failed to read git config")
		}
		if name == "" {
			name = firstNonEmpty(cfg.Committer.Name, cfg.User.Name)
		}
		if email == "" {
			email = firstNonEmpty(cfg.Committer.Email, cfg.User.Email)
		}
	}

	if name == "" || email == "" {
		return entities.Signature{}, ErrNoCommitterIdentity
	}
	return entities.Signature{Name: name, Email: email, When: time.Now()}, nil
}

// LatestReleaseTag returns the highest "vX.Y.Z" tag. Pre-release tags and
// tags that are not semantic versions are ignored.
func (it *Repository) LatestReleaseTag() (string, error) {
	refs, err := it.repo.Tags()
	if err != nil {
		return "", errors.Wrap(err, "failed to list tags")
	}
	defer refs.Close()

	latest := ""
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !semver.IsValid(name) || semver.Prerelease(name) != "" || semver.Canonical(name) != name {
			return nil
		}
		if latest == "" || semver.Compare(name, latest) > 0 {
			latest = name
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return latest, nil
}

// CommitsSince walks from HEAD and leaves out every commit reachable from tag.
func (it *Repository) CommitsSince(tag string) ([]entities.CommitRecord, error) {
	head, err := it.repo.Head()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve HEAD")
	}

	released := make(map[plumbing.Hash]bool)
	if tag != "" {
		tagCommit, resolveErr := it.tagCommit(tag)
		if resolveErr != nil {
			return nil, resolveErr
		}
		walkErr := object.NewCommitPreorderIter(tagCommit, nil, nil).ForEach(func(c *object.Commit) error {
			released[c.Hash] = true
			return nil
		})
		if walkErr != nil {
			return nil, errors.Wrapf(walkErr, "failed to walk history of %s", tag)
		}
	}

	headCommit, err := it.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.Wrap(err, "failed to read HEAD commit")
	}

	var commits []entities.CommitRecord
	err = object.NewCommitPreorderIter(headCommit, released, nil).ForEach(func(c *object.Commit) error {
		if released[c.Hash] {
			return nil
		}
		commits = append(commits, entities.CommitRecord{Hash: c.Hash.String(), Message: c.Message})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk history")
	}
	return commits, nil
}

// CommitFiles stages the given paths that have changes and commits them.
// Paths without changes (or ignored by git) are skipped.
func (it *Repository) CommitFiles(paths []string, message string, committer entities.Signature) error {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "failed to open worktree")
	}

	status, err := worktree.Status()
	if err != nil {
		return errors.Wrap(err, "failed to read worktree status")
	}

	staged := 0
	for _, file := range paths {
		path, relErr := it.worktreePath(file)
		if relErr != nil {
			return relErr
		}
		fileStatus, ok := status[path]
		if !ok || (fileStatus.Worktree == git.Unmodified && fileStatus.Staging == git.Unmodified) {
			logger.Debugf("Skipping unchanged file %s", path)
			continue
		}
		if _, addErr := worktree.Add(path); addErr != nil {
			return errors.Wrapf(addErr, "failed to stage %s", path)
		}
		staged++
	}
	if staged == 0 {
		return errors.Newf("none of %s has changes to commit", strings.Join(paths, ", "))
	}

	signature := toObjectSignature(committer)
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return errors.Wrap(err, "failed to commit")
	}
	logger.Infof("Created commit %s", hash.String()[:7])
	return nil
}

// CreateTag creates an annotated tag on HEAD.
func (it *Repository) CreateTag(name, message string, tagger entities.Signature) error {
	head, err := it.repo.Head()
	if err != nil {
		return errors.Wrap(err, "failed to resolve HEAD")
	}

	_, err = it.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  toObjectSignature(tagger),
		Message: message,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create tag %s", name)
	}
	return nil
}

// worktreePath turns a path relative to the opened directory into the
// slash-separated, root-relative key go-git uses for the worktree status.
func (it *Repository) worktreePath(file string) (string, error) {
	rel, err := filepath.Rel(it.root, filepath.Join(it.dir, file))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf("%s is outside of the worktree %s", file, it.root)
	}
	return filepath.ToSlash(rel), nil
}

// tagCommit resolves a lightweight or annotated tag to its commit.
func (it *Repository) tagCommit(tag string) (*object.Commit, error) {
	ref, err := it.repo.Tag(tag)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve tag %s", tag)
	}

	tagObject, err := it.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return tagObject.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return it.repo.CommitObject(ref.Hash())
	default:
		return nil, errors.Wrapf(err, "failed to read tag %s", tag)
	}
}

func toObjectSignature(signature entities.Signature) *object.Signature {
	return &object.Signature{
		Name:  signature.Name,
		Email: signature.Email,
		When:  signature.When,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
