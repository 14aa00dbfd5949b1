package storage

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo records what the importer would send to a backend.
type fakeRepo struct {
	dsn     string
	closed  bool
	execs   []string
	execErr error
	copied  map[string]int
}

func (f *fakeRepo) CopyFrom(_ context.Context, table string, _ []string, rows [][]any) (int64, error) {
	if f.copied == nil {
		f.copied = map[string]int{}
	}
	f.copied[table] += len(rows)
	return int64(len(rows)), nil
}

func (f *fakeRepo) Exec(_ context.Context, sql string) error {
	f.execs = append(f.execs, sql)
	return f.execErr
}

func (f *fakeRepo) Close() { f.closed = true }

func TestNew_PassesConfigToFactory(t *testing.T) {
	t.Parallel()

	Register("labtest-dsn", func(_ context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{dsn: cfg.DSN}, nil
	})

	repo, err := New(context.Background(), Config{Kind: "labtest-dsn", DSN: "file:jdm.db"})
	require.NoError(t, err)
	defer repo.Close()

	fr, ok := repo.(*fakeRepo)
	require.True(t, ok, "got %T", repo)
	assert.Equal(t, "file:jdm.db", fr.dsn)

	n, err := repo.CopyFrom(context.Background(), "patient", []string{"patient_id", "name"},
		[][]any{{"P1", "Anna"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, map[string]int{"patient": 1}, fr.copied)
}

func TestNew_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Kind: "oracle"})
	require.Error(t, err)
	assert.Equal(t, "unsupported storage.kind=oracle", err.Error())
}

func TestNew_FactoryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("open: database is locked")
	Register("labtest-err", func(context.Context, Config) (Repository, error) {
		return nil, boom
	})

	repo, err := New(context.Background(), Config{Kind: "labtest-err"})
	assert.Nil(t, repo)
	assert.ErrorIs(t, err, boom)
}

func TestRegister_LastWins(t *testing.T) {
	t.Parallel()

	var used string
	Register("labtest-twice", func(context.Context, Config) (Repository, error) {
		used = "first"
		return &fakeRepo{}, nil
	})
	Register("labtest-twice", func(context.Context, Config) (Repository, error) {
		used = "second"
		return &fakeRepo{}, nil
	})

	_, err := New(context.Background(), Config{Kind: "labtest-twice"})
	require.NoError(t, err)
	assert.Equal(t, "second", used)
}

func TestListKinds_SortedCopy(t *testing.T) {
	t.Parallel()

	Register("labtest-b", func(context.Context, Config) (Repository, error) { return &fakeRepo{}, nil })
	Register("labtest-a", func(context.Context, Config) (Repository, error) { return &fakeRepo{}, nil })

	kinds := ListKinds()
	assert.True(t, sort.StringsAreSorted(kinds), "kinds not sorted: %v", kinds)
	assert.Contains(t, kinds, "labtest-a")
	assert.Contains(t, kinds, "labtest-b")

	kinds[0] = "mutated"
	assert.NotContains(t, ListKinds(), "mutated")
}
