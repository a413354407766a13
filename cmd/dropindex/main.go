package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Logging goes to stderr; stdout carries command output and, for the
	// mcp command, protocol frames.
	log.SetOutput(os.Stderr)

	// API keys commonly live in a .env next to the binary. Absence is fine.
	_ = godotenv.Load()

	Execute()
}
