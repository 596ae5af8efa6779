package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smercier/catwalk/internal/source"
	"github.com/smercier/catwalk/pkg/types"
)

// fakeConn scripts the capability surface for tests: which tables exist,
// which calls fail, and how long enumeration takes.
type fakeConn struct {
	tables      []string
	listErr     error
	columns     map[string][]source.Column
	describeErr map[string]error
	rows        map[string][]source.Row
	sampleErr   map[string]error
	listDelay   time.Duration
}

func (f *fakeConn) ListTables(ctx context.Context) ([]string, error) {
	if f.listDelay > 0 {
		select {
		case <-time.After(f.listDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tables, nil
}

func (f *fakeConn) DescribeTable(ctx context.Context, table string) ([]source.Column, error) {
	if err := f.describeErr[table]; err != nil {
		return nil, err
	}
	if cols, ok := f.columns[table]; ok {
		return cols, nil
	}
	return []source.Column{{Name: "id", Type: "INTEGER"}}, nil
}

func (f *fakeConn) SampleRows(ctx context.Context, table string, maxRows int) ([]source.Row, error) {
	if err := f.sampleErr[table]; err != nil {
		return nil, err
	}
	rows := f.rows[table]
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows, nil
}

func sampleSet(tables ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		set[t] = struct{}{}
	}
	return set
}

func TestWalk_AllTablesSucceed(t *testing.T) {
	conn := &fakeConn{tables: []string{"tbla", "tblb", "tblc"}}
	out := Walk(context.Background(), source.Source{Key: "LU", Conn: conn}, WalkOptions{MaxSampleRows: 10})

	if out.Status != types.StatusSuccess {
		t.Fatalf("expected %s, got %s", types.StatusSuccess, out.Status)
	}
	if len(out.Tables) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(out.Tables))
	}
	for i, want := range []string{"tbla", "tblb", "tblc"} {
		o := out.Tables[i]
		if !o.Ok() || o.Table != want {
			t.Fatalf("outcome %d: expected ok %s, got %+v", i, want, o)
		}
		if o.Sample != nil {
			t.Fatalf("table %s was not requested for sampling but has a sample", want)
		}
	}
}

func TestWalk_PartialColumnFetchFailure(t *testing.T) {
	conn := &fakeConn{
		tables:      []string{"tbla", "tblb", "tblc", "tbld"},
		describeErr: map[string]error{"tblb": errors.New("no such table"), "tbld": errors.New("locked")},
	}
	out := Walk(context.Background(), source.Source{Key: "BG", Conn: conn}, WalkOptions{MaxSampleRows: 10})

	if out.Status != types.StatusPartialFailure {
		t.Fatalf("expected %s, got %s", types.StatusPartialFailure, out.Status)
	}
	if len(out.Tables) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(out.Tables))
	}
	failed := 0
	for _, o := range out.Tables {
		if !o.Ok() {
			failed++
			if o.ErrorKind != types.KindColumnFetchError {
				t.Fatalf("expected kind %s, got %s", types.KindColumnFetchError, o.ErrorKind)
			}
			if o.Message == "" {
				t.Fatal("failed outcome must carry a message")
			}
		}
	}
	if failed != 2 {
		t.Fatalf("expected 2 failed outcomes, got %d", failed)
	}
}

func TestWalk_AllTablesFail(t *testing.T) {
	conn := &fakeConn{
		tables: []string{"tbla", "tblb"},
		describeErr: map[string]error{
			"tbla": errors.New("boom"),
			"tblb": errors.New("boom"),
		},
	}
	out := Walk(context.Background(), source.Source{Key: "IT", Conn: conn}, WalkOptions{MaxSampleRows: 10})
	if out.Status != types.StatusTotalFailure {
		t.Fatalf("expected %s, got %s", types.StatusTotalFailure, out.Status)
	}
	if len(out.Tables) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(out.Tables))
	}
}

func TestWalk_EnumerationFailure(t *testing.T) {
	conn := &fakeConn{listErr: source.Tag(types.KindConnectionError, errors.New("handle invalid"))}
	out := Walk(context.Background(), source.Source{Key: "HR", Conn: conn}, WalkOptions{MaxSampleRows: 10})

	if out.Status != types.StatusTotalFailure {
		t.Fatalf("expected %s, got %s", types.StatusTotalFailure, out.Status)
	}
	if len(out.Tables) != 1 {
		t.Fatalf("expected one synthetic outcome, got %d", len(out.Tables))
	}
	synthetic := out.Tables[0]
	if synthetic.Table != "" {
		t.Fatalf("synthetic outcome must use the empty table sentinel, got %q", synthetic.Table)
	}
	if synthetic.ErrorKind != types.KindConnectionError {
		t.Fatalf("expected kind %s, got %s", types.KindConnectionError, synthetic.ErrorKind)
	}
}

func TestWalk_UntaggedEnumerationFailure(t *testing.T) {
	conn := &fakeConn{listErr: errors.New("plain failure")}
	out := Walk(context.Background(), source.Source{Key: "HR", Conn: conn}, WalkOptions{MaxSampleRows: 10})
	if out.Tables[0].ErrorKind != types.KindSchemaEnumerationError {
		t.Fatalf("expected fallback kind %s, got %s", types.KindSchemaEnumerationError, out.Tables[0].ErrorKind)
	}
}

func TestWalk_SampleFailureIsWarning(t *testing.T) {
	conn := &fakeConn{
		tables:    []string{"tblsimulation"},
		sampleErr: map[string]error{"tblsimulation": errors.New("timeout")},
	}
	out := Walk(context.Background(), source.Source{Key: "LU", Conn: conn}, WalkOptions{
		SampleTables:  sampleSet("tblsimulation"),
		MaxSampleRows: 5,
	})

	o := out.Tables[0]
	if !o.Ok() {
		t.Fatalf("sampling failure must not demote the table, got %+v", o)
	}
	if o.Descriptor == nil || len(o.Descriptor.Columns) == 0 {
		t.Fatal("descriptor must stay intact after a sampling failure")
	}
	if o.WarningKind != types.KindSampleFetchError || o.Warning == "" {
		t.Fatalf("expected recorded sample warning, got %+v", o)
	}
	if out.Status != types.StatusSuccess {
		t.Fatalf("expected %s, got %s", types.StatusSuccess, out.Status)
	}
}

func TestWalk_SampleOnlyRequestedTablesAndBounded(t *testing.T) {
	rows := make([]source.Row, 9)
	for i := range rows {
		rows[i] = source.Row{"sim_id": i}
	}
	conn := &fakeConn{
		tables: []string{"tblsimulation", "tbldm", "tblother"},
		rows:   map[string][]source.Row{"tblsimulation": rows, "tbldm": rows, "tblother": rows},
	}
	out := Walk(context.Background(), source.Source{Key: "LU", Conn: conn}, WalkOptions{
		SampleTables:  sampleSet("tblsimulation", "tbldm"),
		MaxSampleRows: 5,
	})

	for _, o := range out.Tables {
		switch o.Table {
		case "tblsimulation", "tbldm":
			if o.Sample == nil {
				t.Fatalf("expected sample for %s", o.Table)
			}
			if len(o.Sample.Rows) > 5 {
				t.Fatalf("sample for %s exceeds bound: %d rows", o.Table, len(o.Sample.Rows))
			}
		default:
			if o.Sample != nil {
				t.Fatalf("did not expect sample for %s", o.Table)
			}
		}
	}
}

func TestWalk_TableOrderPreserved(t *testing.T) {
	// Deliberately not alphabetical; the walker must not re-sort.
	tables := []string{"tblz", "tbla", "tblm"}
	conn := &fakeConn{tables: tables}
	out := Walk(context.Background(), source.Source{Key: "LU", Conn: conn}, WalkOptions{MaxSampleRows: 10})
	for i, want := range tables {
		if out.Tables[i].Table != want {
			t.Fatalf("outcome %d: expected %s, got %s", i, want, out.Tables[i].Table)
		}
	}
}

func TestWalk_CancelledContextStartsNoNewTables(t *testing.T) {
	conn := &fakeConn{tables: []string{"tbla", "tblb"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := Walk(ctx, source.Source{Key: "LU", Conn: conn}, WalkOptions{MaxSampleRows: 10})
	// Enumeration already happened; no per-table unit starts afterwards.
	if len(out.Tables) != 0 {
		t.Fatalf("expected no table outcomes after cancellation, got %d", len(out.Tables))
	}
}
