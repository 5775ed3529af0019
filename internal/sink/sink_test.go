package sink

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/aggregate"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/dataset"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage"
)

type fakeRepo struct {
	execs   []string
	rows    [][]any
	closed  bool
	copyErr error
}

func (f *fakeRepo) CopyFrom(_ context.Context, _ []string, rows [][]any) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.rows = append(f.rows, rows...)
	return int64(len(rows)), nil
}
func (f *fakeRepo) Exec(_ context.Context, sql string) error { f.execs = append(f.execs, sql); return nil }
func (f *fakeRepo) Close()                                   { f.closed = true }

func init() {
	storage.RegisterDialect("sinkfake", storage.Dialect{
		CreateTable: func(d ddl.TableDef) (string, error) { return "CREATE " + d.FQN, nil },
		DropTable:   func(d ddl.TableDef) (string, error) { return "DROP " + d.FQN, nil },
	})
}

func langView() aggregate.View {
	return aggregate.View{
		Table: ddl.TableDef{
			FQN: "programming_lang",
			Columns: []ddl.ColumnDef{
				{Name: "language_name", Type: ddl.TypeText, Nullable: true},
				{Name: "repo_count", Type: ddl.TypeBigInt},
			},
		},
		// Frame columns deliberately out of table order.
		Frame: dataset.Frame{
			Columns: []string{"repo_count", "language_name"},
			Rows:    [][]any{{int64(3), "Go"}, {int64(2), "Rust"}},
		},
	}
}

// The tests below swap the package-level hook and do not run in parallel.

func TestWrite_ReplacesTable(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	repo := &fakeRepo{}
	var gotCfg storage.Config
	newRepository = func(_ context.Context, cfg storage.Config) (storage.Repository, error) {
		gotCfg = cfg
		return repo, nil
	}

	w := Writer{Kind: "sinkfake", DSN: "dsn", User: "u", Password: "p", BatchSize: 1}
	n, err := w.Write(context.Background(), langView())
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if n != 2 {
		t.Fatalf("Write = %d, want 2", n)
	}

	wantCfg := storage.Config{
		Kind: "sinkfake", DSN: "dsn", User: "u", Password: "p",
		Table: "programming_lang", Columns: []string{"language_name", "repo_count"},
	}
	if !reflect.DeepEqual(gotCfg, wantCfg) {
		t.Fatalf("cfg = %+v, want %+v", gotCfg, wantCfg)
	}
	if want := []string{"DROP programming_lang", "CREATE programming_lang"}; !reflect.DeepEqual(repo.execs, want) {
		t.Fatalf("execs = %v, want %v", repo.execs, want)
	}
	if want := [][]any{{"Go", int64(3)}, {"Rust", int64(2)}}; !reflect.DeepEqual(repo.rows, want) {
		t.Fatalf("rows = %#v, want %#v (table column order)", repo.rows, want)
	}
	if !repo.closed {
		t.Fatalf("repository was not closed")
	}
}

func TestWrite_Errors(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	boom := errors.New("boom")

	t.Run("open", func(t *testing.T) {
		newRepository = func(context.Context, storage.Config) (storage.Repository, error) { return nil, boom }
		_, err := Writer{Kind: "sinkfake"}.Write(context.Background(), langView())
		if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "sink: table=programming_lang: open: ") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("copy", func(t *testing.T) {
		repo := &fakeRepo{copyErr: boom}
		newRepository = func(context.Context, storage.Config) (storage.Repository, error) { return repo, nil }
		_, err := Writer{Kind: "sinkfake"}.Write(context.Background(), langView())
		if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "sink: table=programming_lang: ") {
			t.Fatalf("err = %v", err)
		}
		if !repo.closed {
			t.Fatalf("repository was not closed after failure")
		}
	})

	t.Run("missing column", func(t *testing.T) {
		repo := &fakeRepo{}
		newRepository = func(context.Context, storage.Config) (storage.Repository, error) { return repo, nil }
		v := langView()
		v.Frame.Columns = []string{"repo_count", "lang"}
		_, err := Writer{Kind: "sinkfake"}.Write(context.Background(), v)
		if err == nil || !strings.Contains(err.Error(), `column "language_name" missing`) {
			t.Fatalf("err = %v", err)
		}
		if len(repo.execs) != 0 {
			t.Fatalf("execs = %v, want none before alignment succeeds", repo.execs)
		}
	})
}

func TestAlignRows_IdentityShares(t *testing.T) {
	t.Parallel()

	v := langView()
	v.Frame = dataset.Frame{Columns: []string{"language_name", "repo_count"}, Rows: [][]any{{"Go", int64(1)}}}
	rows, err := alignRows(v)
	if err != nil {
		t.Fatalf("alignRows error: %v", err)
	}
	if &rows[0] != &v.Frame.Rows[0] {
		t.Fatalf("identity alignment copied rows")
	}
}
