// Package config handles all configuration for the modset command line.
// Values follow the usual chain: defaults, then config file, then environment
// variables, then flags (flags are overlaid by the cli package).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/structs"
	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// CLI holds configuration for the modset command line.
type CLI struct {
	// Filter is the default path prefix used to restrict which changed files
	// count toward the module set when --filter isn't given.
	Filter string `koanf:"filter"`

	// Depth is how many leading path segments identify a module.
	Depth int `koanf:"depth"`

	// IncludeDeleted controls whether deleted files still mark their module
	// as affected.
	IncludeDeleted bool `koanf:"include_deleted"`

	// Strict errors on changed paths too shallow to name a module instead of
	// skipping them.
	Strict bool `koanf:"strict"`

	// Repo is the repository path commands operate on.
	Repo string `koanf:"repo"`

	Detail   bool   `koanf:"detail"`
	Format   string `koanf:"format"`
	NoColor  bool   `koanf:"no_color"`
	LogLevel string `koanf:"log_level"`
}

// DefaultCLIConfig returns a pre-populated configuration struct that is used as
// the base for superimposing user configuration settings.
func DefaultCLIConfig() *CLI {
	return &CLI{
		Filter:         "apps",
		Depth:          2,
		IncludeDeleted: true,
		Repo:           ".",
		Format:         "pretty",
		LogLevel:       "error",
	}
}

// Get configuration for the command line.
// This involves correctly finding and ordering different possible paths for
// the configuration file:
//
//  1. The function is intended to be called with paths gleaned from the
//     -config flag in the cli.
//  2. If the user does not use the -config flag or the path does not exist,
//     then we default to a few hard coded config path locations.
//  3. Then try to see if the user has set an envvar for the config file,
//     which overrides all previous config file paths.
//  4. Finally, whatever configuration file path is found first is processed.
//
// Whether or not we use the configuration file we then search the environment
// for all environment variables:
//   - Environment variables are loaded after the config file and therefore
//     overwrite any conflicting keys.
//   - All configuration that goes into a configuration file can also be used
//     as an environment variable.
func InitCLIConfig(flagPath string, loadDefaults bool) (*CLI, error) {
	var config *CLI

	if loadDefaults {
		config = DefaultCLIConfig()
	}

	homeDir, _ := os.UserHomeDir()
	path := searchFilePaths(possibleConfigPaths(homeDir, flagPath)...)

	// envVars top all other entries so if its not empty we just insert it over
	// the current path regardless of if we found one.
	envPath := os.Getenv("MODSET_CLI_CONFIG_PATH")
	if envPath != "" {
		path = envPath
	}

	configParser := koanf.New(".")

	if path != "" {
		err := configParser.Load(file.Provider(path), hcl.Parser(true))
		if err != nil {
			return nil, err
		}
	}

	err := configParser.Load(env.Provider("MODSET_", "__", func(s string) string {
		newStr := strings.TrimPrefix(s, "MODSET_")
		newStr = strings.ToLower(newStr)
		return newStr
	}), nil)
	if err != nil {
		return nil, err
	}

	err = configParser.Unmarshal("", &config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// searchFilePaths returns the first given path that exists and is a regular
// file.
func searchFilePaths(paths ...string) string {
	for _, path := range paths {
		if path == "" {
			continue
		}

		stat, err := os.Stat(path)
		if err != nil {
			continue
		}

		if stat.IsDir() {
			continue
		}

		return path
	}

	return ""
}

// FromFile loads configuration from a single HCL file, skipping the rest of
// the lookup chain. Mostly useful for tests and validation.
func (c *CLI) FromFile(path string) error {
	configParser := koanf.New(".")

	err := configParser.Load(file.Provider(path), hcl.Parser(true))
	if err != nil {
		return err
	}

	return configParser.Unmarshal("", c)
}

// GetCLIEnvVars returns the environment variables the command line reads, in
// MODSET_<KEY> form, for help text and the printenv command.
func GetCLIEnvVars() []string {
	vars := []string{"MODSET_CLI_CONFIG_PATH"}

	for _, field := range structs.Fields(CLI{}) {
		key := field.Tag("koanf")
		if key == "" {
			continue
		}

		vars = append(vars, fmt.Sprintf("MODSET_%s", strings.ToUpper(key)))
	}

	return vars
}
