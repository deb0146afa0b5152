package config

import "fmt"

func possibleConfigPaths(homeDir, flagPath string) []string {
	return []string{
		flagPath,
		fmt.Sprintf("%s/%s", homeDir, ".modset.hcl"),
		fmt.Sprintf("%s/%s/%s", homeDir, ".config", "modset.hcl"),
	}
}
