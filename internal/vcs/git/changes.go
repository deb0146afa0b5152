package git

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"github.com/rs/zerolog/log"

	"github.com/modset/modset/internal/resolver"
)

// Changes returns the files that differ between two revisions. Revisions can
// be anything go-git resolves: SHAs, branch names, tags, "HEAD~1".
//
// An empty newRev defaults to HEAD. An empty oldRev diffs newRev against the
// empty tree so every file reports as added; this covers the first commit in
// a repository, which has no parent to diff against. An unresolvable non-empty
// revision is an error, never a silent empty result.
func (r *Repo) Changes(ctx context.Context, oldRev, newRev string) ([]resolver.ChangedFile, error) {
	if newRev == "" {
		newRev = "HEAD"
	}

	newTree, err := r.treeForRevision(newRev)
	if err != nil {
		return nil, err
	}

	// oldTree stays nil for an empty oldRev; go-git treats a nil tree as the
	// empty tree during diffing.
	var oldTree *object.Tree
	if oldRev != "" {
		oldTree, err = r.treeForRevision(oldRev)
		if err != nil {
			return nil, err
		}
	}

	treeChanges, err := object.DiffTreeWithOptions(ctx, oldTree, newTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, wrapError(err, "could not diff revision trees")
	}

	changed := []resolver.ChangedFile{}
	for _, change := range treeChanges {
		action, err := change.Action()
		if err != nil {
			return nil, wrapError(err, "could not determine change action")
		}

		switch action {
		case merkletrie.Insert:
			changed = append(changed, resolver.ChangedFile{
				Path: change.To.Name,
				Kind: resolver.ChangeAdded,
			})
		case merkletrie.Delete:
			changed = append(changed, resolver.ChangedFile{
				OldPath: change.From.Name,
				Kind:    resolver.ChangeDeleted,
			})
		case merkletrie.Modify:
			if change.From.Name != change.To.Name {
				changed = append(changed, resolver.ChangedFile{
					Path:    change.To.Name,
					OldPath: change.From.Name,
					Kind:    resolver.ChangeRenamed,
				})
				continue
			}

			changed = append(changed, resolver.ChangedFile{
				Path: change.To.Name,
				Kind: resolver.ChangeModified,
			})
		}
	}

	log.Debug().
		Str("old_revision", oldRev).
		Str("new_revision", newRev).
		Int("changed_files", len(changed)).
		Msg("computed revision diff")

	return changed, nil
}

// treeForRevision resolves a revision to its commit's tree.
func (r *Repo) treeForRevision(rev string) (*object.Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, wrapErrorf(ErrResolveFailed, "revision %q", rev)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, wrapErrorf(err, "could not read commit for revision %q", rev)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, wrapErrorf(err, "could not read tree for revision %q", rev)
	}

	return tree, nil
}
