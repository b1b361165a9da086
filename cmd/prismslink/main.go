package main

import (
	"os"

	"prismslink/cmd/prismslink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
