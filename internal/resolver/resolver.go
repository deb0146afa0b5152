// Package resolver computes which modules of a repository a change touches.
// A module is identified by the first few path segments of the files it owns
// (ex. "apps/whoami"). The package is pure; callers feed it the changed file
// list from whatever diff source they have and receive back the deduplicated,
// sorted set of affected modules.
package resolver

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DefaultDepth is the number of leading path segments that identify a module
// when the caller does not say otherwise.
const DefaultDepth = 2

// ChangeKind describes what happened to a file between two revisions.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "ADDED"
	ChangeModified ChangeKind = "MODIFIED"
	ChangeDeleted  ChangeKind = "DELETED"
	ChangeRenamed  ChangeKind = "RENAMED"
)

// ChangedFile is a single entry from a revision diff. Path is the file's
// current location; OldPath is its previous location and is only populated
// for deletions and renames.
type ChangedFile struct {
	Path    string
	OldPath string
	Kind    ChangeKind
}

// Options control how changed files are folded into modules.
type Options struct {
	// Filter restricts which changed paths are considered. Matching is
	// segment aware: "apps" matches "apps/foo" but not "apps2/foo". An empty
	// filter matches every path.
	Filter string

	// Depth is how many leading path segments identify a module. Zero or
	// negative values fall back to DefaultDepth.
	Depth int

	// IncludeDeleted controls whether deleted files still mark their module
	// as affected. Removing a module's files usually means the module needs a
	// redeploy, so most callers want this on.
	IncludeDeleted bool

	// Strict turns matching paths with fewer than Depth segments (ex. a
	// root-level README when the filter is empty) into an error instead of
	// silently skipping them.
	Strict bool
}

// ModuleSet is the deduplicated, sorted collection of module identifiers
// produced by one Resolve call. It is built fresh per invocation and meant to
// be handed straight to downstream build/deploy stages.
type ModuleSet []string

// JSON serializes the set as a compact JSON array. An empty or nil set
// serializes as "[]", never null, since downstream matrix consumers choke on
// the latter.
func (m ModuleSet) JSON() ([]byte, error) {
	if m == nil {
		m = ModuleSet{}
	}

	return json.Marshal(m)
}

// Resolve folds a list of changed files down to the set of affected modules.
//
// An empty result is not an error; it simply means nothing downstream needs
// to run. Errors only occur in strict mode when a matching path is too
// shallow to name a module.
func Resolve(changes []ChangedFile, opts Options) (ModuleSet, error) {
	depth := opts.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}

	seen := map[string]struct{}{}
	modules := ModuleSet{}

	for _, change := range changes {
		for _, path := range candidatePaths(change, opts.IncludeDeleted) {
			if !matchesFilter(path, opts.Filter) {
				continue
			}

			module, ok := ModuleFor(path, depth)
			if !ok {
				if opts.Strict {
					return nil, fmt.Errorf("changed path %q has fewer than %d segments; cannot name a module", path, depth)
				}
				continue
			}

			if _, exists := seen[module]; exists {
				continue
			}

			seen[module] = struct{}{}
			modules = append(modules, module)
		}
	}

	sort.Strings(modules)

	return modules, nil
}

// candidatePaths returns the path(s) a change contributes. Deletions only have
// an old path; renames contribute both ends since a file moving between
// modules affects the source and the destination module.
func candidatePaths(change ChangedFile, includeDeleted bool) []string {
	switch change.Kind {
	case ChangeDeleted:
		if !includeDeleted {
			return nil
		}
		return []string{change.OldPath}
	case ChangeRenamed:
		return []string{change.OldPath, change.Path}
	default:
		return []string{change.Path}
	}
}

// matchesFilter reports whether path sits under the filter prefix. The match
// is segment aware so that a filter of "apps" does not also capture "apps2".
func matchesFilter(path, filter string) bool {
	if filter == "" {
		return true
	}

	if !strings.HasPrefix(path, filter) {
		return false
	}

	rest := path[len(filter):]
	return rest == "" || strings.HasPrefix(rest, "/")
}

// ModuleFor collapses a path to its first depth segments. It reports false
// for paths too shallow to name a module.
func ModuleFor(path string, depth int) (string, bool) {
	if path == "" {
		return "", false
	}

	segments := strings.Split(path, "/")
	if len(segments) < depth {
		return "", false
	}

	return strings.Join(segments[:depth], "/"), true
}
