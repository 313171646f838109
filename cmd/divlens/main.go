package main

import (
	"os"

	"github.com/wonny/divlens/backend/cmd/divlens/commands"
)

// main is the entry point for the divlens CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/divlens [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
