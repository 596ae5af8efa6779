package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/smercier/catwalk/internal/source"
)

// dialect abstracts the per-driver introspection queries. Table and column
// order is whatever the driver returns; nothing here re-sorts.
type dialect interface {
	listTables(ctx context.Context, db *sql.DB, schema string) ([]string, error)
	columns(ctx context.Context, db *sql.DB, schema, table string) ([]source.Column, error)
	quoteIdent(name string) string
}

var dialects = map[string]dialect{
	"mysql":    mysqlDialect{},
	"postgres": postgresDialect{},
	"sqlite3":  sqliteDialect{},
}

type mysqlDialect struct{}

func (mysqlDialect) listTables(ctx context.Context, db *sql.DB, schema string) ([]string, error) {
	return scanNames(db.QueryContext(ctx, `
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
	`, schema))
}

func (mysqlDialect) columns(ctx context.Context, db *sql.DB, schema, table string) ([]source.Column, error) {
	return scanColumns(db.QueryContext(ctx, `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, schema, table))
}

func (mysqlDialect) quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

type postgresDialect struct{}

func (postgresDialect) listTables(ctx context.Context, db *sql.DB, schema string) ([]string, error) {
	if schema == "" {
		schema = "public"
	}
	return scanNames(db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
	`, schema))
}

func (postgresDialect) columns(ctx context.Context, db *sql.DB, schema, table string) ([]source.Column, error) {
	if schema == "" {
		schema = "public"
	}
	return scanColumns(db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`, schema, table))
}

func (postgresDialect) quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type sqliteDialect struct{}

func (sqliteDialect) listTables(ctx context.Context, db *sql.DB, schema string) ([]string, error) {
	return scanNames(db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`))
}

func (d sqliteDialect) columns(ctx context.Context, db *sql.DB, schema, table string) ([]source.Column, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", d.quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []source.Column
	for rows.Next() {
		var cid, notNull, pk int
		var name, declType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, source.Column{
			Name:     name,
			Type:     declType,
			Nullable: notNull == 0,
		})
	}
	return cols, rows.Err()
}

func (sqliteDialect) quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func scanNames(rows *sql.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanColumns(rows *sql.Rows, err error) ([]source.Column, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []source.Column
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, err
		}
		cols = append(cols, source.Column{
			Name:     name,
			Type:     dataType,
			Nullable: nullable == "YES",
		})
	}
	return cols, rows.Err()
}
