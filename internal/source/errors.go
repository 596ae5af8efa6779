package source

import (
	"context"
	"errors"

	"github.com/smercier/catwalk/pkg/types"
)

// Error tags a failure with one of the report's error kinds so callers can
// classify it without depending on driver-specific error types.
type Error struct {
	Kind string
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Tag wraps err with the given kind. Returns nil for a nil error.
func Tag(kind string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Kind extracts the error kind from err, or returns fallback when err
// carries no tag.
func Kind(err error, fallback string) string {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return fallback
}

// Unavailable returns a Conn whose every call fails with the given error
// tagged as a connection error. It stands in for a source whose handle
// could not be opened, so the walk records the failure instead of the
// whole run aborting.
func Unavailable(err error) Conn {
	return unavailableConn{err: err}
}

type unavailableConn struct {
	err error
}

func (c unavailableConn) ListTables(ctx context.Context) ([]string, error) {
	return nil, Tag(types.KindConnectionError, c.err)
}

func (c unavailableConn) DescribeTable(ctx context.Context, table string) ([]Column, error) {
	return nil, Tag(types.KindConnectionError, c.err)
}

func (c unavailableConn) SampleRows(ctx context.Context, table string, maxRows int) ([]Row, error) {
	return nil, Tag(types.KindConnectionError, c.err)
}
