// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/cmd/httpserver"
	"github.com/go-petr/card-ledger/internal/codeservice"
	"github.com/go-petr/card-ledger/internal/middleware"
	"github.com/go-petr/card-ledger/pkg/configpkg"
	"github.com/go-petr/card-ledger/pkg/dbpkg"
)

// Paths are relative to a package two levels below the module root.
const (
	ConfigPath      = "../../configs"
	MigrationSource = "file://../../configs/db/migration"
)

// LoadConfig reads the application config used by integration tests.
func LoadConfig(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(ConfigPath)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, ConfigPath, err)
	}

	return config
}

// SetupServer returns test server that cleans up database after each integration test.
func SetupServer(t *testing.T, config configpkg.Config, dispatcher codeservice.Dispatcher) *httpserver.Server {
	t.Helper()

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, logger, config, dispatcher)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config, dispatcher) returned error: %v`, err)
	}

	return server
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	const query = `
	SELECT string_agg(quote_ident(table_name), ', ')
	FROM information_schema.tables
	WHERE table_schema = 'public' AND table_name <> 'schema_migrations';`

	var tables string
	if err := db.QueryRow(query).Scan(&tables); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB migrates the database, connects to it and flushes it once the test is done.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	if err := dbpkg.Migrate(MigrationSource, source); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	if err := dbpkg.Migrate(MigrationSource, source); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}

		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
