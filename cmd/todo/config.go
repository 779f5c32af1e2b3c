package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"task-list/internal/api"
	"task-list/internal/cli"
	"task-list/internal/config"
	"task-list/internal/logging"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// developmentDSN is the SQLite file used while developing, relative to the
// working directory
const developmentDSN = "todo.db"

// getEnvironment determines the current environment from TODO_ENV
func getEnvironment() Environment {
	switch os.Getenv("TODO_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Production uses the configuration as loaded
		return Production
	}
}

// applyEnvironment adjusts the store for the environment. Command-line flags
// are applied later and still win.
func applyEnvironment(env Environment, cfg *config.Config) {
	switch env {
	case Development:
		cfg.Store.Backend = config.BackendSQLite
		cfg.Store.DSN = developmentDSN
	case Testing:
		cfg.Store.Backend = config.BackendMemory
		cfg.Store.DSN = ""
	}
}

// newAPIFactory opens the configured store and logger and wires the API over them
func newAPIFactory() cli.APIFactory {
	return func(cfg *config.Config) (*cli.Backend, error) {
		level := cfg.Application.LogLevel
		if cfg.Application.Verbose {
			level = logging.LevelDebug
		}
		logger, err := logging.NewLogger(cfg.Application.LogFile, level)
		if err != nil {
			return nil, fmt.Errorf("failed to open log: %w", err)
		}

		repo, err := config.CreateRepository(cfg)
		if err != nil {
			logger.Close()
			return nil, err
		}
		logger.Debug("task store opened", "backend", cfg.Store.Backend, "dsn", cfg.Store.DSN)

		return &cli.Backend{
			API:    api.New(repo, cfg, logger),
			Logger: logger.WithComponent("cli"),
			Closer: closers{repo, logger},
		}, nil
	}
}

// closers closes every member, returning the joined errors
type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, closer := range c {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
