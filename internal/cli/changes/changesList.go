package changes

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/modset/modset/internal/cli/cl"
	cliFmt "github.com/modset/modset/internal/cli/format"
	"github.com/modset/modset/internal/resolver"
	"github.com/modset/modset/internal/vcs/git"
)

var cmdChangesList = &cobra.Command{
	Use:   "list <old-revision> <new-revision>",
	Short: "List the files that changed between two revisions",
	Long: `List the files that changed between two revisions.

Each row shows the changed path, what happened to it, and which module it maps to under the current
depth setting. Files too shallow to name a module show "-"; these are the paths a strict resolve
would reject.`,
	Example: `$ modset changes list HEAD~1 HEAD
$ modset changes list 4f2a91c 81d03be`,
	RunE: changesList,
	Args: cobra.ExactArgs(2),
}

func init() {
	cmdChangesList.Flags().StringP("repo", "r", "", "path to the repository; defaults to the current directory")
	CmdChanges.AddCommand(cmdChangesList)
}

func changesList(cmd *cobra.Command, args []string) error {
	cl.State.Fmt.Print("Retrieving changed files")

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

	changed, err := repo.Changes(context.Background(), args[0], args[1])
	if err != nil {
		cl.State.Fmt.PrintErr(fmt.Sprintf("could not diff revisions: %v", err))
		cl.State.Fmt.Finish()
		return err
	}

	if len(changed) == 0 {
		cl.State.Fmt.Println("No changed files found")
		cl.State.Fmt.Finish()
		return nil
	}

	depth := cl.State.Config.Depth
	if depth <= 0 {
		depth = resolver.DefaultDepth
	}

	data := [][]string{}
	for _, change := range changed {
		path := change.Path
		target := change.Path

		switch change.Kind {
		case resolver.ChangeDeleted:
			path = change.OldPath
			target = change.OldPath
		case resolver.ChangeRenamed:
			path = fmt.Sprintf("%s -> %s", change.OldPath, change.Path)
		}

		module, ok := resolver.ModuleFor(target, depth)
		if !ok {
			module = "-"
		}

		data = append(data, []string{
			path,
			cliFmt.ChangeKind(change.Kind),
			module,
		})
	}

	table := formatTable(data, !cl.State.Config.NoColor)

	cl.State.Fmt.PrintSuccess(fmt.Sprintf("Found %s", english.Plural(len(changed), "changed file", "")))
	cl.State.Fmt.Println(table)
	cl.State.Fmt.Finish()

	return nil
}

func formatTable(data [][]string, color bool) string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)

	table.SetHeader([]string{"Path", "Change", "Module"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(true)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetRowSeparator("―")
	table.SetRowLine(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")

	if color {
		table.SetHeaderColor(
			tablewriter.Color(tablewriter.FgBlueColor),
			tablewriter.Color(tablewriter.FgBlueColor),
			tablewriter.Color(tablewriter.FgBlueColor),
		)
		table.SetColumnColor(
			tablewriter.Color(tablewriter.FgYellowColor),
			tablewriter.Color(0),
			tablewriter.Color(0),
		)
	}

	table.AppendBulk(data)

	table.Render()
	return tableString.String()
}
