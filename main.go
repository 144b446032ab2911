package main

import (
	"os"

	"github.com/jihun/brolly/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
