package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smercier/catwalk/internal/catalog"
	"github.com/smercier/catwalk/internal/source"
	"github.com/smercier/catwalk/pkg/types"
)

func TestWrite_SampledTablesOnly(t *testing.T) {
	r := &catalog.CatalogReport{
		Sources: []catalog.SourceOutcome{{
			Key:    "LU",
			Status: types.StatusSuccess,
			Tables: []catalog.TableOutcome{
				{
					Table: "tblsimulation",
					Descriptor: &catalog.TableDescriptor{
						Name: "tblsimulation",
						Columns: []catalog.ColumnDescriptor{
							{Name: "sim_id", Type: "INTEGER"},
							{Name: "name", Type: "TEXT"},
						},
					},
					Sample: &catalog.RowSample{Rows: []source.Row{
						{"sim_id": 1, "name": "base"},
						{"sim_id": 2, "name": nil},
					}},
				},
				{
					// Described but never sampled: no file expected.
					Table:      "tblother",
					Descriptor: &catalog.TableDescriptor{Name: "tblother"},
				},
				{
					Table:     "tblbroken",
					ErrorKind: types.KindColumnFetchError,
					Message:   "corrupt page",
				},
			},
		}},
	}

	dir := t.TempDir()
	written, problems := Write(r, dir)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(written) != 1 {
		t.Fatalf("expected 1 file written, got %v", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "LU", "tblsimulation.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "sim_id,name\n1,base\n2,\n"
	if string(data) != want {
		t.Fatalf("expected csv:\n%s\ngot:\n%s", want, data)
	}

	if _, err := os.Stat(filepath.Join(dir, "LU", "tblother.csv")); err == nil {
		t.Fatal("unsampled table must not produce a file")
	}
}

func TestWrite_ProblemDoesNotStopOthers(t *testing.T) {
	mk := func(name string) catalog.TableOutcome {
		return catalog.TableOutcome{
			Table:      name,
			Descriptor: &catalog.TableDescriptor{Name: name, Columns: []catalog.ColumnDescriptor{{Name: "id"}}},
			Sample:     &catalog.RowSample{Rows: []source.Row{{"id": 1}}},
		}
	}
	r := &catalog.CatalogReport{
		Sources: []catalog.SourceOutcome{{
			Key:    "BG",
			Status: types.StatusSuccess,
			Tables: []catalog.TableOutcome{mk("tbla"), mk("tblb")},
		}},
	}

	dir := t.TempDir()
	// Occupy the target directory path with a file so BG/tbla.csv fails.
	if err := os.WriteFile(filepath.Join(dir, "BG"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	written, problems := Write(r, dir)
	if len(problems) != 2 {
		t.Fatalf("expected both files to fail under blocked dir, got written=%v problems=%v", written, problems)
	}
}
