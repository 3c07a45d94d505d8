package main

import (
	"os"

	"github.com/quantastica/qps-client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
