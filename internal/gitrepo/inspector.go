package gitrepo

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/Tiliavir/commit-diary/internal/errors"
	"github.com/Tiliavir/commit-diary/internal/model"
)

// Inspector returns metadata about the most recent commit of a repository.
type Inspector interface {
	LastCommit() (model.CommitRecord, error)
}

// Repository is a git repository opened with go-git.
type Repository struct {
	path   string
	remote string
	repo   *git.Repository
}

// Open opens the repository containing path, searching parent directories
// for the .git directory. Linked worktrees resolve their refs through the
// main repository. remote names the remote whose URL is reported.
func Open(path, remote string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewRepositoryError(path, "resolving path", err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, errors.NewRepositoryError(abs, "opening", err)
	}
	return &Repository{path: abs, remote: remote, repo: repo}, nil
}

// LastCommit reads the commit HEAD points to. Branch is empty for a detached
// HEAD and RepositoryURL is empty when the remote is not configured. A
// repository without commits yields an error matching errors.ErrNoCommits.
func (r *Repository) LastCommit() (model.CommitRecord, error) {
	head, err := r.repo.Head()
	if stderrors.Is(err, plumbing.ErrReferenceNotFound) && r.unbornHead() {
		return model.CommitRecord{}, errors.NewRepositoryError(r.path, "reading HEAD", errors.ErrNoCommits)
	}
	if err != nil {
		return model.CommitRecord{}, errors.NewRepositoryError(r.path, "reading HEAD", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return model.CommitRecord{}, errors.NewRepositoryError(r.path, "reading commit "+head.Hash().String(), err)
	}

	rec := model.CommitRecord{
		Timestamp: commit.Author.When,
		Message:   strings.TrimSpace(commit.Message),
		Hash:      commit.Hash.String(),
		WorkDir:   r.path,
	}
	if head.Name().IsBranch() {
		rec.Branch = head.Name().Short()
	}

	url, err := r.remoteURL()
	if err != nil {
		return model.CommitRecord{}, err
	}
	rec.RepositoryURL = url

	if wt, err := r.repo.Worktree(); err == nil {
		rec.WorkDir = wt.Filesystem.Root()
	}
	return rec, nil
}

// unbornHead reports whether HEAD names a branch that has no commit yet.
func (r *Repository) unbornHead() bool {
	ref, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return false
	}
	_, err = r.repo.Storer.Reference(ref.Target())
	return stderrors.Is(err, plumbing.ErrReferenceNotFound)
}

func (r *Repository) remoteURL() (string, error) {
	if r.remote == "" {
		return "", nil
	}
	remote, err := r.repo.Remote(r.remote)
	if stderrors.Is(err, git.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.NewRepositoryError(r.path, "reading remote "+r.remote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}
