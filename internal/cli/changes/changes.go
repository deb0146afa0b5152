package changes

import (
	"github.com/spf13/cobra"
)

var CmdChanges = &cobra.Command{
	Use:   "changes",
	Short: "Inspect the raw changed files behind a module set",
	Long: `Inspect the raw changed files behind a module set.

Useful for working out why a module did or didn't make it into a resolve result.`,
}
