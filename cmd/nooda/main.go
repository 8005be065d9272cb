package main

import (
	"os"

	"github.com/noodahq/nooda/cmd/nooda/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
