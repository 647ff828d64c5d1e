package main

import (
	"os"

	"github.com/ashfall-games/intothedark/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
