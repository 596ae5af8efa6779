package source

import "context"

type Column struct {
	Name     string
	Type     string // empty when the driver cannot report a declared type
	Nullable bool
}

// Row is a loosely-typed record: column name to string/number/bool/nil.
type Row map[string]any

// Conn is the read-only capability surface a walk needs from one database
// handle. Implementations must not be assumed safe for concurrent use;
// a walk issues calls on one Conn strictly sequentially.
type Conn interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, table string) ([]Column, error)
	SampleRows(ctx context.Context, table string, maxRows int) ([]Row, error)
}

// Source is one independently-addressable database, keyed by an identifier
// such as a country code. The Conn is borrowed for the duration of a walk;
// the registry owns its lifecycle.
type Source struct {
	Key  string
	Conn Conn
}
