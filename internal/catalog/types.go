// Package catalog walks database sources and folds what it finds, including
// every failure, into an immutable report.
package catalog

import (
	"github.com/smercier/catwalk/internal/source"
	"github.com/smercier/catwalk/pkg/types"
)

type ColumnDescriptor struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Nullable bool   `json:"nullable"`
}

type TableDescriptor struct {
	Name    string             `json:"name"`
	Columns []ColumnDescriptor `json:"columns"`
}

// RowSample is a bounded row excerpt fetched for tables explicitly requested
// for display, distinct from full table contents.
type RowSample struct {
	Rows []source.Row `json:"rows"`
}

// TableOutcome records one attempted table. It is ok when ErrorKind is
// empty; a failed sample fetch never fails the table, it is recorded as a
// warning instead.
type TableOutcome struct {
	Table       string           `json:"table"`
	Descriptor  *TableDescriptor `json:"descriptor,omitempty"`
	Sample      *RowSample       `json:"sample,omitempty"`
	ErrorKind   string           `json:"errorKind,omitempty"`
	Message     string           `json:"message,omitempty"`
	WarningKind string           `json:"warningKind,omitempty"`
	Warning     string           `json:"warning,omitempty"`
}

func (o TableOutcome) Ok() bool {
	return o.ErrorKind == ""
}

type SourceOutcome struct {
	Key    string         `json:"key"`
	Status string         `json:"status"`
	Tables []TableOutcome `json:"tables"`
}

type Summary struct {
	Success        int `json:"success"`
	PartialFailure int `json:"partialFailure"`
	TotalFailure   int `json:"totalFailure"`
}

// CatalogReport is the sole artifact of an exploration: source outcomes in
// input order plus summary counts. Incomplete marks a run cut short by
// cancellation or a fail-fast abort; Aborted marks that fail-fast fired.
type CatalogReport struct {
	Sources    []SourceOutcome `json:"sources"`
	Summary    Summary         `json:"summary"`
	Incomplete bool            `json:"incomplete,omitempty"`
	Aborted    bool            `json:"aborted,omitempty"`
}

// deriveStatus is a pure function of the outcome list. A source with zero
// tables enumerated cleanly counts as a success.
func deriveStatus(outcomes []TableOutcome) string {
	failed := 0
	for _, o := range outcomes {
		if !o.Ok() {
			failed++
		}
	}
	switch {
	case failed == 0:
		return types.StatusSuccess
	case failed == len(outcomes):
		return types.StatusTotalFailure
	default:
		return types.StatusPartialFailure
	}
}

func summarize(outcomes []SourceOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case types.StatusSuccess:
			s.Success++
		case types.StatusPartialFailure:
			s.PartialFailure++
		case types.StatusTotalFailure:
			s.TotalFailure++
		}
	}
	return s
}
