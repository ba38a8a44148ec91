// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/cytoscape/cyweb/internal/api"
	"github.com/cytoscape/cyweb/internal/config"
	"github.com/cytoscape/cyweb/internal/core"
)

// SetupTestApp builds a core.App backed by a migrated in-memory database.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	database := SetupTestDB(t)

	cfg := &config.Config{}
	cfg.Upload.MaxMB = 32
	app := &core.App{DB: database}
	app.SetConfig(cfg)
	return app
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	server := api.NewServer(app)
	return server, app.DB
}
