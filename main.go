package main

import (
	"os"

	"github.com/comp423-25s/csxl-team-f3/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
