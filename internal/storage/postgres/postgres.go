package postgres

import (
	"database/sql"
	_ "embed"
	"fmt"

	"campusEvents/internal/config"
	"campusEvents/internal/storage/sqlstore"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

func InitDB(dbCfg *config.Database) (*sqlstore.Store, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return sqlstore.New(db, sqlstore.Postgres), nil
}
