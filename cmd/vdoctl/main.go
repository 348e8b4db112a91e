package main

import (
	"os"

	"github.com/dkeye/VdoCall/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
