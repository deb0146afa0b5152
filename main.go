package main

import (
	"os"

	"github.com/modset/modset/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil {
		os.Exit(1)
	}
}
