package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/emiliopalmerini/agent-monitor/internal/cli"
)

func main() {
	// A .env file is a convenience for local development; its absence is
	// the normal case.
	_ = godotenv.Load()

	// The exit code is always 0: a hook must never fail the session that
	// invoked it. Errors here come from human-facing commands only; the
	// send path discards its own.
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(0)
}
