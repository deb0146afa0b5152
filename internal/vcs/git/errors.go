package git

import (
	"errors"
	"fmt"
)

// Sentinel errors for the git layer. Callers check these with errors.Is so the
// underlying go-git errors never leak into the rest of the program.

// ErrNotRepository is returned when the given path does not contain a git
// repository.
var ErrNotRepository = errors.New("not a git repository")

// ErrResolveFailed is returned when a revision specification cannot be
// resolved to a commit (branch/tag doesn't exist, bad SHA).
var ErrResolveFailed = errors.New("cannot resolve revision")

// wrapError wraps an error with additional context while keeping it checkable
// against the sentinels above.
func wrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// wrapErrorf is wrapError with formatting.
func wrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
