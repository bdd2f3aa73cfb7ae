package main

import (
	"os"

	"github.com/ry-lang/ry/cmd/ry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
