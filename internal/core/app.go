package core

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/cytoscape/cyweb/internal/assets"
	"github.com/cytoscape/cyweb/internal/config"
	"github.com/cytoscape/cyweb/internal/db"
)

// App holds the core components shared by the server and background jobs.
type App struct {
	DB *sql.DB

	// The active configuration is swapped wholesale on file reloads while
	// request handlers read it concurrently, so access goes through an
	// atomic pointer.
	config atomic.Pointer[config.Config]
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, and running migrations.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(database, assets.MigrationsFS); err != nil {
		// We can't proceed without a valid database schema.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	app := &App{DB: database}
	app.SetConfig(cfg)
	return app, nil
}

// Config returns the active configuration. Safe to call concurrently with
// SetConfig.
func (a *App) Config() *config.Config {
	return a.config.Load()
}

// SetConfig swaps in a new configuration, e.g. after a config file reload.
func (a *App) SetConfig(cfg *config.Config) {
	a.config.Store(cfg)
}

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
