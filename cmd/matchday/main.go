package main

import (
	"os"

	"github.com/wonny/matchday/cmd/matchday/commands"
)

// main is the entry point for the matchday CLI
// ⭐ single CLI entry point: go run ./cmd/matchday [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
