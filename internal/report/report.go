// Package report renders a catalog report; it consumes the report value
// only and never reaches back into the sources.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/smercier/catwalk/internal/catalog"
	"github.com/smercier/catwalk/pkg/types"
)

// Text writes a human-readable listing: every source with its status,
// every table with its columns, and every failure with kind and cause.
func Text(w io.Writer, r *catalog.CatalogReport) error {
	for _, src := range r.Sources {
		if _, err := fmt.Fprintf(w, "source %s: %s (%d tables)\n", src.Key, src.Status, len(src.Tables)); err != nil {
			return err
		}
		for _, t := range src.Tables {
			if err := writeTable(w, t); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "summary: success=%d partial=%d total_failure=%d\n",
		r.Summary.Success, r.Summary.PartialFailure, r.Summary.TotalFailure)
	if err != nil {
		return err
	}
	if r.Incomplete {
		if _, err := fmt.Fprintln(w, "warning: run incomplete"); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, t catalog.TableOutcome) error {
	if !t.Ok() {
		name := t.Table
		if types.FatalToSource(t.ErrorKind) {
			// Synthetic outcome for a failed table enumeration.
			name = "(enumeration)"
		}
		_, err := fmt.Fprintf(w, "  %s: FAILED %s: %s\n", name, t.ErrorKind, t.Message)
		return err
	}

	if _, err := fmt.Fprintf(w, "  %s (%d columns)\n", t.Table, len(t.Descriptor.Columns)); err != nil {
		return err
	}
	for _, col := range t.Descriptor.Columns {
		line := "    " + col.Name
		if col.Type != "" {
			line += " " + col.Type
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if t.Sample != nil {
		if _, err := fmt.Fprintf(w, "    sample: %d rows\n", len(t.Sample.Rows)); err != nil {
			return err
		}
	}
	if t.Warning != "" {
		if _, err := fmt.Fprintf(w, "    warning %s: %s\n", t.WarningKind, t.Warning); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r *catalog.CatalogReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
