package catalog

import (
	"context"

	"github.com/smercier/catwalk/internal/source"
	"github.com/smercier/catwalk/pkg/types"
)

type WalkOptions struct {
	// SampleTables names the tables that additionally get a row sample.
	SampleTables map[string]struct{}
	// MaxSampleRows bounds each sample.
	MaxSampleRows int
}

// Walk enumerates one source and describes each table in enumeration order.
// A failed enumeration short-circuits to a total failure with one synthetic
// outcome; a failed describe fails only its table and the walk continues.
// Once ctx is cancelled no new table is started.
func Walk(ctx context.Context, src source.Source, opts WalkOptions) SourceOutcome {
	tables, err := src.Conn.ListTables(ctx)
	if err != nil {
		return SourceOutcome{
			Key:    src.Key,
			Status: types.StatusTotalFailure,
			Tables: []TableOutcome{{
				ErrorKind: source.Kind(err, types.KindSchemaEnumerationError),
				Message:   err.Error(),
			}},
		}
	}

	outcomes := make([]TableOutcome, 0, len(tables))
	for _, name := range tables {
		if ctx.Err() != nil {
			break
		}
		outcomes = append(outcomes, walkTable(ctx, src.Conn, name, opts))
	}

	return SourceOutcome{
		Key:    src.Key,
		Status: deriveStatus(outcomes),
		Tables: outcomes,
	}
}

func walkTable(ctx context.Context, conn source.Conn, name string, opts WalkOptions) TableOutcome {
	cols, err := conn.DescribeTable(ctx, name)
	if err != nil {
		return TableOutcome{
			Table:     name,
			ErrorKind: source.Kind(err, types.KindColumnFetchError),
			Message:   err.Error(),
		}
	}

	descriptor := &TableDescriptor{Name: name, Columns: make([]ColumnDescriptor, 0, len(cols))}
	for _, col := range cols {
		descriptor.Columns = append(descriptor.Columns, ColumnDescriptor{
			Name:     col.Name,
			Type:     col.Type,
			Nullable: col.Nullable,
		})
	}

	out := TableOutcome{Table: name, Descriptor: descriptor}
	if _, wanted := opts.SampleTables[name]; !wanted {
		return out
	}

	rows, err := conn.SampleRows(ctx, name, opts.MaxSampleRows)
	if err != nil {
		// The descriptor stays intact; sampling failure is a warning.
		out.WarningKind = types.KindSampleFetchError
		out.Warning = err.Error()
		return out
	}
	if len(rows) > opts.MaxSampleRows {
		rows = rows[:opts.MaxSampleRows]
	}
	out.Sample = &RowSample{Rows: rows}
	return out
}
