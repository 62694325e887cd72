// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure connections for the supported drivers:
//   - postgres (default): the Supabase database, from SUPABASE_DB_URL or discrete fields
//   - mysql: an alternative relational target
//   - sqlite: local runs and tests (":memory:" or a file path)
//
// # Connect
//
// Connect validates the configuration, opens the pool, applies pool limits and
// pings the server within the configured timeout. The pool is shared by the
// image workers, so MaxOpenConns bounds concurrent database access.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table (PRAGMA, SHOW COLUMNS or
// information_schema depending on the dialect). The integrity check compares
// them against the card models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "ygo_card_metadata")
package database
