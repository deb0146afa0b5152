// Package cli is the main entry point into modset. Commands mostly glue the
// vcs and resolver packages together and handle presentation.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/modset/modset/internal/cli/changes"
	"github.com/modset/modset/internal/cli/cl"
	configcmd "github.com/modset/modset/internal/cli/config"
	"github.com/modset/modset/internal/cli/resolve"
)

var appVersion = "0.0.dev_000000"

// RootCmd is the base of the cli
var RootCmd = &cobra.Command{
	Use:   "modset",
	Short: "Modset resolves which monorepo modules a change touches.",
	Long: `Modset resolves which monorepo modules a change touches.

Given two revisions of a repository, modset diffs them, keeps the changed files under a configurable
path prefix, and collapses each one down to the module that owns it (the first two path segments by
default, ex. "apps/whoami"). The resulting set is printed as a JSON array so CI pipelines can feed it
straight into a build/deploy matrix.

An empty result means nothing needs to build; it is printed as "[]" and exits zero.
`,
	Version: " ", // We leave this added but empty so that the rootcmd will supply the -v flag
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cl.InitState(cmd)
		setupLogging(cl.State.Config.LogLevel)
	},
}

func init() {
	RootCmd.SetVersionTemplate(humanizeVersion(appVersion))
	RootCmd.AddCommand(resolve.CmdResolve)
	RootCmd.AddCommand(changes.CmdChanges)
	RootCmd.AddCommand(configcmd.CmdConfig)

	RootCmd.PersistentFlags().String("config", "", "configuration file path")
	RootCmd.PersistentFlags().Bool("detail", false, "show extra detail for some commands")
	RootCmd.PersistentFlags().String("format", "", "output format; accepted values are 'pretty', 'json', 'silent'")
	RootCmd.PersistentFlags().Bool("no-color", false, "disable color output")
	RootCmd.PersistentFlags().String("loglevel", "", "log level; accepted values are 'debug', 'info', 'warn', 'error', 'fatal', 'panic'")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// setupLogging writes structured logs to stderr so stdout stays reserved for
// machine-readable command output.
func setupLogging(loglevel string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLogLevel(loglevel))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func parseLogLevel(loglevel string) zerolog.Level {
	switch loglevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		log.Error().Msgf("loglevel %s not recognized; defaulting to error", loglevel)
		return zerolog.ErrorLevel
	}
}

func humanizeVersion(version string) string {
	semver, hash, found := strings.Cut(version, "_")
	if !found {
		return ""
	}
	return fmt.Sprintf("modset %s [%s]\n", semver, hash)
}
