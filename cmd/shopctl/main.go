package main

import (
	"os"

	"github.com/microshop-platform/shopctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
