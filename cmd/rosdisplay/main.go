package main

import (
	"os"

	"github.com/brokenrobotz/viam-ros-display/cmd/rosdisplay/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
