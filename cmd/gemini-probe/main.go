package main

import (
	"fmt"
	"os"

	"github.com/tingly-dev/gemini-probe/internal/command"
)

// Build information variables
var (
	// Set by compiler via -ldflags
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
	platform  = "unknown"
)

func main() {
	rootCmd := command.NewRootCommand(command.BuildInfo{
		Version:   version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVersion,
		Platform:  platform,
	}, command.NewGoogleGenerator)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
