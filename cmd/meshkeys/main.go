package main

import (
	"os"

	"meshkeys/cmd/meshkeys/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
