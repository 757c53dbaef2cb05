// Package db owns the process-wide DuckDB connection used to query
// session step logs.
package db

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	instance *sql.DB
	once     sync.Once
	openErr  error
)

// Get hands out the shared in-memory connection, opening it on first
// use. Callers must not close it; every query in the process goes
// through this one connection.
func Get() (*sql.DB, error) {
	once.Do(func() {
		instance, openErr = open()
	})
	return instance, openErr
}

func open() (*sql.DB, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// One connection is enough: the store issues queries serially and
	// DuckDB prefers it for read_json workloads.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	// read_json lives in the JSON extension.
	if _, err := conn.Exec("INSTALL json"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to install JSON extension: %w", err)
	}
	if _, err := conn.Exec("LOAD json"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to load JSON extension: %w", err)
	}

	return conn, nil
}
