package main

import (
	"os"

	"github.com/VDFOREVER/blaze/cmd/blaze/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
