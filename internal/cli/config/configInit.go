package config

import (
	"fmt"
	"os"

	_ "embed"

	"github.com/spf13/cobra"

	"github.com/modset/modset/internal/cli/cl"
)

var cmdConfigInit = &cobra.Command{
	Use:   "init",
	Short: "Create an example modset config file",
	Long: `Create an example modset configuration file.

This file can be used as a starting point and customized further. Place it at ~/.modset.hcl or
~/.config/modset.hcl to have it picked up automatically, or point at it with --config.`,
	Example: `$ modset config init
$ modset config init -f ~/.modset.hcl`,
	RunE: initConfig,
}

//go:embed sampleConfig.hcl
var content string

func init() {
	cmdConfigInit.Flags().StringP("filepath", "f", "./modset.hcl", "path to file")
	CmdConfig.AddCommand(cmdConfigInit)
}

func initConfig(cmd *cobra.Command, _ []string) error {
	filepath, _ := cmd.Flags().GetString("filepath")

	cl.State.Fmt.Print("Creating config file")

	err := createConfigFile(filepath)
	if err != nil {
		cl.State.Fmt.PrintErr(fmt.Sprintf("could not create config file: %v", err))
		cl.State.Fmt.Finish()
		return err
	}

	cl.State.Fmt.PrintSuccess(fmt.Sprintf("Created config file: %s", filepath))
	cl.State.Fmt.Finish()
	return nil
}

func createConfigFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	if err != nil {
		return err
	}

	return nil
}
