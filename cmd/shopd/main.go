package main

import (
	"os"

	"github.com/example/furnishop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
