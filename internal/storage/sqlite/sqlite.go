package sqlite

import (
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"campusEvents/internal/storage/sqlstore"

	msqlite "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

const memory = ":memory:"

// New opens (or creates) the database at path. Use ":memory:" for a private
// in-memory database.
func New(path string) (*sqlstore.Store, error) {
	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("failed to register functions: %w", err)
	}

	if path != memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:" to one database.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return sqlstore.New(db, sqlstore.SQLite), nil
}

var (
	registerOnce sync.Once
	registerErr  error
)

// registerFunctions installs the Unicode case folding used by title search.
// Registration is process-wide and applies to connections opened afterwards.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = msqlite.RegisterDeterministicScalarFunction(sqlstore.SQLiteLower, 1, unicodeLower)
	})

	return registerErr
}

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
