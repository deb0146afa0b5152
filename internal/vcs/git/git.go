// Package git reads changed file lists out of a repository so the resolver
// can stay pure. It is a thin facade over go-git; nothing outside this package
// touches go-git types.
package git

import (
	"errors"

	gogit "github.com/go-git/go-git/v5"
)

// Repo is a handle to an opened repository.
type Repo struct {
	repo *gogit.Repository
}

// Open opens the repository at path. The .git directory is detected upward
// from path so running inside a subdirectory of a checkout works.
func Open(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, wrapErrorf(ErrNotRepository, "no repository at %q", path)
		}
		return nil, wrapErrorf(err, "could not open repository at %q", path)
	}

	return &Repo{repo: repo}, nil
}

// NewRepo wraps an already opened go-git repository. Mostly useful for tests
// that build repositories in memory.
func NewRepo(repo *gogit.Repository) *Repo {
	return &Repo{repo: repo}
}
