// Package export writes sampled tables from a catalog report to per-source
// CSV files, one directory per source key.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smercier/catwalk/internal/catalog"
)

// Write dumps every sampled table of every source in the report to
// <dir>/<key>/<table>.csv. The header follows the descriptor's column
// order; cells are rendered with fmt, nil as empty. A failure on one file
// is recorded and the remaining files are still written.
func Write(r *catalog.CatalogReport, dir string) (written []string, problems []string) {
	for _, src := range r.Sources {
		for _, t := range src.Tables {
			if !t.Ok() || t.Sample == nil {
				continue
			}
			path := filepath.Join(dir, src.Key, t.Table+".csv")
			if err := writeTable(path, t); err != nil {
				problems = append(problems, fmt.Sprintf("%s/%s: %v", src.Key, t.Table, err))
				continue
			}
			written = append(written, path)
		}
	}
	return written, problems
}

func writeTable(path string, t catalog.TableOutcome) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, len(t.Descriptor.Columns))
	for i, col := range t.Descriptor.Columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range t.Sample.Rows {
		for i, name := range header {
			record[i] = renderCell(row[name])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func renderCell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
