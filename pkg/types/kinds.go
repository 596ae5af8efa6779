package types

// Source statuses derived from table outcomes.
// Rules:
// - Success when every table outcome is ok
// - PartialFailure when at least one ok and at least one failed
// - TotalFailure when enumeration failed or every table failed
const (
	StatusSuccess        = "SUCCESS"
	StatusPartialFailure = "PARTIAL_FAILURE"
	StatusTotalFailure   = "TOTAL_FAILURE"
)

// Error kinds recorded in outcomes:
// "connection_error", "schema_enumeration_error" abort the whole source walk;
// "column_fetch_error" fails a single table; "sample_fetch_error" is a
// warning attached to an otherwise ok table.
const (
	KindConnectionError        = "connection_error"
	KindSchemaEnumerationError = "schema_enumeration_error"
	KindColumnFetchError       = "column_fetch_error"
	KindSampleFetchError       = "sample_fetch_error"
)

// FatalToSource reports whether the given error kind short-circuits the
// walk of its source rather than a single table.
func FatalToSource(kind string) bool {
	switch kind {
	case KindConnectionError, KindSchemaEnumerationError:
		return true
	default:
		return false
	}
}
