// Package cl contains global variables used across the cli package. Yeah its
// probably a bad pattern but it works and removes us from dependency hell.
package cl

import (
	"log"

	"github.com/clintjedwards/polyfmt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/modset/modset/internal/config"
)

// Harness is a structure for values that all commands need access to.
type Harness struct {
	Fmt            polyfmt.Formatter
	Config         *config.CLI
	ConfigFilePath string
}

// State holds values that aid in the lifetime of a command.
var State *Harness

// Init harness for command line functions, used to provide different
// functionality during the life of a command line run.
func InitState(cmd *cobra.Command) {
	// Including these in the pre run hook instead of in the enclosing/parent
	// command definition allows cobra to still print errors and usage for its
	// own cli verifications, but ignore our errors.
	cmd.SilenceUsage = true  // Don't print the usage if we get an upstream error
	cmd.SilenceErrors = true // Let us handle error printing ourselves

	State = &Harness{}

	configPath, _ := cmd.Flags().GetString("config")
	State.NewConfig(configPath)

	// Initiate the formatter(this controls the command line output)
	format, _ := cmd.Flags().GetString("format")
	if format != "" {
		State.Config.Format = format
	}

	State.NewFormatter()

	overlayGlobalFlags(cmd)
}

// Flags are the last possible way to provide variables to the command line.
// For global variables we allow the user to specify them through envvars and
// configuration. Because of this we need to take whatever we have in the
// config from previous steps that retrieve them from those locations and then
// if the user has passed in a flag overwrite whatever those variables are.
func overlayGlobalFlags(cmd *cobra.Command) {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		color.NoColor = true // turn off color globally
		State.Config.NoColor = noColor
	}

	detail, _ := cmd.Flags().GetBool("detail")
	if detail {
		State.Config.Detail = detail
	}

	loglevel, _ := cmd.Flags().GetString("loglevel")
	if loglevel != "" {
		State.Config.LogLevel = loglevel
	}
}

func (s *Harness) NewFormatter() {
	clifmt, err := polyfmt.NewFormatter(polyfmt.Mode(s.Config.Format), polyfmt.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	s.Fmt = clifmt
}

func (s *Harness) NewConfig(configPath string) {
	config, err := config.InitCLIConfig(configPath, true)
	if err != nil {
		log.Fatal(err)
	}

	s.Config = config
	s.ConfigFilePath = configPath
}
