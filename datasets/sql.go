package datasets

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// OpenSQL opens and pings a database for the dataset loader.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}
	return db, nil
}

// LoadSQL reads every table in TableNames with SELECT *. Column order follows the
// result set and rows keep the order the database returns them in.
func LoadSQL(ctx context.Context, db *sql.DB) (*Store, error) {
	tables := make([]*Table, 0, len(TableNames))
	for _, name := range TableNames {
		t, err := loadSQLTable(ctx, db, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewStore(tables...)
}

func loadSQLTable(ctx context.Context, db *sql.DB, name string) (*Table, error) {
	// name always comes from TableNames
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+name)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("table %s columns: %w", name, err)
	}

	var records [][]Value
	for rows.Next() {
		dest := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning table %s: %w", name, err)
		}

		rec := make([]Value, len(columns))
		for i, v := range dest {
			rec[i] = NewValue(v)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %w", name, err)
	}

	return NewTable(name, columns, records)
}
