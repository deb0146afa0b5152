// Package resolve implements the command that turns a revision range into the
// set of affected modules.
package resolve

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/modset/modset/internal/cli/cl"
	cliFmt "github.com/modset/modset/internal/cli/format"
	"github.com/modset/modset/internal/resolver"
	"github.com/modset/modset/internal/vcs/git"
)

// CmdResolve is the main operation of the tool; everything else exists to
// support it.
var CmdResolve = &cobra.Command{
	Use:   "resolve [<old-revision> <new-revision>]",
	Short: "Resolve the set of modules affected between two revisions",
	Long: `Resolve the set of modules affected between two revisions.

The two revisions can be anything git understands: SHAs, branch names, tags, "HEAD~1". Revisions left
off the command line are read from the MODSET_BEFORE_SHA and MODSET_AFTER_SHA environment variables,
which CI platforms typically inject. A missing new revision defaults to HEAD; a missing old revision
diffs against the empty tree, which reports every file as changed (the first-commit case).

The module set is printed as a sorted JSON array on stdout, "[]" when nothing under the filter
changed. An empty set is not an error; downstream stages should treat it as nothing to build.`,
	Example: `$ modset resolve HEAD~1 HEAD
$ modset resolve --filter apps 4f2a91c 81d03be
$ MODSET_BEFORE_SHA=4f2a91c MODSET_AFTER_SHA=81d03be modset resolve`,
	RunE: resolveModules,
	Args: cobra.MaximumNArgs(2),
}

func init() {
	CmdResolve.Flags().StringP("filter", "f", "", "path prefix changed files must sit under; defaults to the configured filter")
	CmdResolve.Flags().Int("depth", 0, "number of leading path segments that identify a module")
	CmdResolve.Flags().Bool("include-deleted", true, "count deleted files toward their module")
	CmdResolve.Flags().Bool("strict", false, "error on changed paths too shallow to name a module")
	CmdResolve.Flags().StringP("repo", "r", "", "path to the repository; defaults to the current directory")
}

// ciEnvironment is the revision information CI platforms hand us through the
// environment when the command line leaves it out.
type ciEnvironment struct {
	BeforeSha string `split_words:"true"`
	AfterSha  string `split_words:"true"`
}

func resolveModules(cmd *cobra.Command, args []string) error {
	cl.State.Fmt.Print("Resolving affected modules")

	oldRev := ""
	newRev := ""
	switch len(args) {
	case 2:
		oldRev, newRev = args[0], args[1]
	case 1:
		oldRev = args[0]
	}

	if oldRev == "" || newRev == "" {
		ciEnv := ciEnvironment{}
		err := envconfig.Process("modset", &ciEnv)
		if err != nil {
			cl.State.Fmt.PrintErr(fmt.Sprintf("could not read CI environment: %v", err))
			cl.State.Fmt.Finish()
			return err
		}

		if oldRev == "" {
			oldRev = ciEnv.BeforeSha
		}
		if newRev == "" {
			newRev = ciEnv.AfterSha
		}
	}

	repoPath := cl.State.Config.Repo
	flagRepo, _ := cmd.Flags().GetString("repo")
	if flagRepo != "" {
		repoPath = flagRepo
	}

	repo, err := git.Open(repoPath)
	if err != nil {
		cl.State.Fmt.PrintErr(fmt.Sprintf("could not open repository: %v", err))
		cl.State.Fmt.Finish()
		return err
	}

	changed, err := repo.Changes(context.Background(), oldRev, newRev)
	if err != nil {
		cl.State.Fmt.PrintErr(fmt.Sprintf("could not diff revisions: %v", err))
		cl.State.Fmt.Finish()
		return err
	}

	modules, err := resolver.Resolve(changed, optionsFromFlags(cmd))
	if err != nil {
		cl.State.Fmt.PrintErr(fmt.Sprintf("could not resolve modules: %v", err))
		cl.State.Fmt.Finish()
		return err
	}

	out, err := modules.JSON()
	if err != nil {
		cl.State.Fmt.PrintErr(fmt.Sprintf("could not serialize module set: %v", err))
		cl.State.Fmt.Finish()
		return err
	}

	cl.State.Fmt.PrintSuccess(fmt.Sprintf("Resolved %s from %s",
		english.Plural(len(modules), "affected module", ""),
		english.Plural(len(changed), "changed file", "")))

	if cl.State.Config.Detail {
		cl.State.Fmt.PrintSuccess(fmt.Sprintf("Modules: %s", cliFmt.SliceJoin(modules, "none")))
	}

	cl.State.Fmt.Println(string(out))
	cl.State.Fmt.Finish()

	return nil
}

// optionsFromFlags assembles resolver options from config, overlaying any
// flags the user explicitly set. Checking Changed rather than the value lets
// `--filter ""` mean "match everything".
func optionsFromFlags(cmd *cobra.Command) resolver.Options {
	conf := cl.State.Config

	opts := resolver.Options{
		Filter:         conf.Filter,
		Depth:          conf.Depth,
		IncludeDeleted: conf.IncludeDeleted,
		Strict:         conf.Strict,
	}

	if cmd.Flags().Changed("filter") {
		opts.Filter, _ = cmd.Flags().GetString("filter")
	}

	if cmd.Flags().Changed("depth") {
		opts.Depth, _ = cmd.Flags().GetInt("depth")
	}

	if cmd.Flags().Changed("include-deleted") {
		opts.IncludeDeleted, _ = cmd.Flags().GetBool("include-deleted")
	}

	if cmd.Flags().Changed("strict") {
		opts.Strict, _ = cmd.Flags().GetBool("strict")
	}

	return opts
}
