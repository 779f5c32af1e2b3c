package config

import (
	"fmt"

	"task-list/internal/repository"
	"task-list/internal/repository/memory"
	"task-list/internal/repository/sqlite"
)

// CreateRepository creates the task store selected by the configuration
func CreateRepository(config *Config) (repository.Repository, error) {
	switch config.Store.Backend {
	case BackendMemory, "":
		return memory.New(), nil
	case BackendSQLite:
		repo, err := sqlite.New(config.Store.DSN,
			sqlite.WithQueryTimeout(config.GetQueryTimeout()),
			sqlite.WithWriteTimeout(config.GetWriteTimeout()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	default:
		return nil, &ConfigError{Field: "store.backend", Message: fmt.Sprintf("unknown backend %q", config.Store.Backend)}
	}
}
