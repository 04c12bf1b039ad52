// Package vcs stages generated artifacts in the enclosing git worktree.
package vcs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

// ErrNotRepository means no git repository encloses the directory.
var ErrNotRepository = errors.New("not inside a git repository")

// Stager records paths in version control.
type Stager interface {
	Stage(paths []string) error
}

// Repo is an opened git worktree.
type Repo struct {
	root string
	wt   *git.Worktree
	log  *zap.Logger
}

// Open finds the repository enclosing dir, searching parent directories.
func Open(dir string, log *zap.Logger) (*Repo, error) {
	if log == nil {
		log = zap.NewNop()
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, ErrNotRepository
	}
	if err != nil {
		return nil, fmt.Errorf("opening git repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		root = wt.Filesystem.Root()
	}
	return &Repo{root: root, wt: wt, log: log}, nil
}

// Stage adds each path, files or directories, to the index. Tracked files
// that no longer exist under a staged directory are staged as removals.
func (r *Repo) Stage(paths []string) error {
	var rels []string
	for _, p := range paths {
		rel, err := r.relative(p)
		if err != nil {
			return err
		}
		rels = append(rels, rel)
	}

	for i, rel := range rels {
		if _, err := os.Stat(paths[i]); err != nil {
			continue
		}
		if _, err := r.wt.Add(rel); err != nil {
			return fmt.Errorf("staging %s: %w", rel, err)
		}
		r.log.Debug("staged", zap.String("path", rel))
	}

	status, err := r.wt.Status()
	if err != nil {
		return fmt.Errorf("reading git status: %w", err)
	}
	for file, st := range status {
		if st.Worktree != git.Deleted || !under(file, rels) {
			continue
		}
		if _, err := r.wt.Remove(file); err != nil {
			return fmt.Errorf("staging removal of %s: %w", file, err)
		}
		r.log.Debug("staged removal", zap.String("path", file))
	}
	return nil
}

func (r *Repo) relative(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository at %s", p, r.root)
	}
	return filepath.ToSlash(rel), nil
}

func under(file string, prefixes []string) bool {
	for _, p := range prefixes {
		if file == p || strings.HasPrefix(file, p+"/") {
			return true
		}
	}
	return false
}
