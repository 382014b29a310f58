package main

import (
	"os"

	"github.com/bgdnvk/campusbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
