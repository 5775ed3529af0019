package mysql

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage"
)

func TestDriverConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cfg        Config
		wantUser   string
		wantPasswd string
		wantDB     string
		wantErr    bool
	}{
		{
			name:       "dsn credentials kept",
			cfg:        Config{DSN: "root:pw@tcp(localhost:3306)/github_repos"},
			wantUser:   "root",
			wantPasswd: "pw",
			wantDB:     "github_repos",
		},
		{
			name:       "credentials injected",
			cfg:        Config{DSN: "tcp(mysql:3306)/github_repos?charset=utf8mb4", User: "spark", Password: "s3cret"},
			wantUser:   "spark",
			wantPasswd: "s3cret",
			wantDB:     "github_repos",
		},
		{name: "empty", cfg: Config{DSN: " "}, wantErr: true},
		{name: "invalid", cfg: Config{DSN: "no-slash-here"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := driverConfig(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("driverConfig() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("driverConfig() error = %v", err)
			}
			if got.User != tt.wantUser || got.Passwd != tt.wantPasswd || got.DBName != tt.wantDB {
				t.Fatalf("driverConfig() = %s:%s db=%s, want %s:%s db=%s",
					got.User, got.Passwd, got.DBName, tt.wantUser, tt.wantPasswd, tt.wantDB)
			}
		})
	}
}

func TestInsertSQL(t *testing.T) {
	t.Parallel()

	stmt, args, err := insertSQL("analytics.programming_lang",
		[]string{"language_name", "repo_count"},
		[][]any{{"Go", int64(3)}, {nil, int64(1)}})
	if err != nil {
		t.Fatalf("insertSQL() error = %v", err)
	}
	wantStmt := "INSERT INTO `analytics`.`programming_lang` (`language_name`,`repo_count`) VALUES (?,?),(?,?)"
	if stmt != wantStmt {
		t.Fatalf("insertSQL() stmt =\n%s\nwant:\n%s", stmt, wantStmt)
	}
	if want := []any{"Go", int64(3), nil, int64(1)}; !reflect.DeepEqual(args, want) {
		t.Fatalf("insertSQL() args = %#v, want %#v", args, want)
	}

	_, _, err = insertSQL("t", []string{"a", "b"}, [][]any{{1}})
	if err == nil || !strings.Contains(err.Error(), "row 0 length 1") {
		t.Fatalf("insertSQL(short row) error = %v", err)
	}
}

func TestChunkRows(t *testing.T) {
	t.Parallel()

	rows := [][]any{{1}, {2}, {3}, {4}, {5}}
	tests := []struct {
		size int
		want []int
	}{
		{size: 2, want: []int{2, 2, 1}},
		{size: 5, want: []int{5}},
		{size: 10, want: []int{5}},
		{size: 0, want: []int{1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		var got []int
		for _, c := range chunkRows(rows, tt.size) {
			got = append(got, len(c))
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("chunkRows(size=%d) sizes = %v, want %v", tt.size, got, tt.want)
		}
	}
	if got := chunkRows(nil, 3); len(got) != 0 {
		t.Errorf("chunkRows(nil) = %v, want empty", got)
	}
}

func TestCopyFrom_NoRowsSkipsDB(t *testing.T) {
	t.Parallel()

	r := &Repository{cfg: Config{Table: "t"}}
	if n, err := r.CopyFrom(context.Background(), []string{"a"}, nil); err != nil || n != 0 {
		t.Fatalf("CopyFrom(nil) = (%d, %v), want (0, nil)", n, err)
	}
	if _, err := r.CopyFrom(context.Background(), nil, [][]any{{1}}); err == nil {
		t.Fatalf("CopyFrom(no columns) error = nil")
	}
}

// TestRegistrationUsesNewRepositoryHook swaps a package variable, so it does
// not run in parallel.
func TestRegistrationUsesNewRepositoryHook(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	var gotCfg Config
	closed := false
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		gotCfg = cfg
		return &Repository{}, func() { closed = true }, nil
	}

	repo, err := storage.New(context.Background(), storage.Config{
		Kind:     "mysql",
		DSN:      "tcp(mysql:3306)/github_repos",
		User:     "spark",
		Password: "pw",
		Table:    "search_terms_relevance",
		Columns:  []string{"search_term", "relevance_score"},
	})
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	want := Config{
		DSN:      "tcp(mysql:3306)/github_repos",
		User:     "spark",
		Password: "pw",
		Table:    "search_terms_relevance",
		Columns:  []string{"search_term", "relevance_score"},
	}
	if !reflect.DeepEqual(gotCfg, want) {
		t.Fatalf("hook cfg = %+v, want %+v", gotCfg, want)
	}
	repo.Close()
	if !closed {
		t.Fatalf("Close() did not invoke closeFn")
	}
	if _, err := storage.DialectFor("mysql"); err != nil {
		t.Fatalf("DialectFor(mysql) error = %v", err)
	}
}
