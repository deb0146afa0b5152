package config

import (
	"github.com/spf13/cobra"

	"github.com/modset/modset/internal/cli/cl"
	conf "github.com/modset/modset/internal/config"
)

var cmdConfigPrintEnv = &cobra.Command{
	Use:   "printenv",
	Short: "Print the list of environment variables the cli looks for",
	Long: `Print the list of environment variables the cli looks for on startup.

All configuration set by environment variable overrides default and config file read configuration.`,
	RunE: configPrintEnv,
}

func init() {
	CmdConfig.AddCommand(cmdConfigPrintEnv)
}

func configPrintEnv(_ *cobra.Command, _ []string) error {
	for _, envvar := range conf.GetCLIEnvVars() {
		cl.State.Fmt.Println(envvar)
	}

	cl.State.Fmt.Finish()
	return nil
}
