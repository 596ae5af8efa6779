// Package sqldb implements the source.Conn capabilities over database/sql,
// with introspection dialects for mysql, postgres and sqlite3.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/smercier/catwalk/internal/source"
	"github.com/smercier/catwalk/pkg/types"
)

const queryTimeout = 5 * time.Second

type Conn struct {
	db      *sql.DB
	schema  string
	dialect dialect
	timeout time.Duration
}

// Open opens a handle for the given driver and verifies it with a ping.
func Open(driver, dsn, schema string) (*Conn, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s ping failed: %w", driver, err)
	}

	return &Conn{
		db:      db,
		schema:  schema,
		dialect: d,
		timeout: queryTimeout,
	}, nil
}

func (c *Conn) ListTables(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tables, err := c.dialect.listTables(ctx, c.db, c.schema)
	if err != nil {
		return nil, source.Tag(c.classifyEnumeration(ctx), err)
	}
	return tables, nil
}

// classifyEnumeration disambiguates a failed table listing: if the handle no
// longer answers a ping the fault is connection-level, otherwise it is a
// schema enumeration fault.
func (c *Conn) classifyEnumeration(ctx context.Context) string {
	if err := c.db.PingContext(ctx); err != nil {
		return types.KindConnectionError
	}
	return types.KindSchemaEnumerationError
}

func (c *Conn) DescribeTable(ctx context.Context, table string) ([]source.Column, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cols, err := c.dialect.columns(ctx, c.db, c.schema, table)
	if err != nil {
		return nil, source.Tag(types.KindColumnFetchError, err)
	}
	return cols, nil
}

func (c *Conn) SampleRows(ctx context.Context, table string, maxRows int) ([]source.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", c.dialect.quoteIdent(table), maxRows)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, source.Tag(types.KindSampleFetchError, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, source.Tag(types.KindSampleFetchError, err)
	}

	var sample []source.Row
	for rows.Next() && len(sample) < maxRows {
		cells := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, source.Tag(types.KindSampleFetchError, err)
		}
		row := make(source.Row, len(names))
		for i, name := range names {
			row[name] = looselyTyped(cells[i])
		}
		sample = append(sample, row)
	}
	if err := rows.Err(); err != nil {
		return nil, source.Tag(types.KindSampleFetchError, err)
	}
	return sample, nil
}

func (c *Conn) Close() error {
	return c.db.Close()
}

// looselyTyped normalizes driver values to string/number/bool/nil so rows
// survive JSON encoding without driver-specific types leaking through.
func looselyTyped(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return v
	}
}
