// Package app provides the application context and dependency management for
// the maprecon CLI. It centralizes configuration, logging, and lifecycle
// management following the dependency injection pattern.
package app

import (
	"github.com/rs/zerolog"

	"maprecon/pkg/hierarchy"
)

// App represents the maprecon application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// builder creates a hierarchy path builder from the configured column names.
func (a *App) builder() *hierarchy.Builder {
	b := hierarchy.NewBuilder()
	if a.config.LevelColumn != "" {
		b.LevelColumn = a.config.LevelColumn
	}
	if a.config.NameColumn != "" {
		b.NameColumn = a.config.NameColumn
	}
	if a.config.TagColumn != "" {
		b.TagColumn = a.config.TagColumn
	}
	return b
}
