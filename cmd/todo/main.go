package main

import (
	"fmt"
	"os"

	"task-list/internal/cli"
	"task-list/internal/config"
)

func main() {
	// Defaults, config file and TODO_* environment; flags are applied by the root command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyEnvironment(getEnvironment(), cfg)

	root := cli.NewRootCommand(cfg, newAPIFactory())
	err = root.Execute()
	if closeErr := root.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
