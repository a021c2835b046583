package investments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB records statements instead of talking to PostgreSQL. Only the
// methods the package uses are implemented; the embedded interfaces panic
// if anything else is called.
type fakeDB struct {
	beginErr error

	// failOnExec makes the nth Exec inside a transaction fail (1-based).
	failOnExec int
	commitErr  error

	txs     []*fakeTx
	execs   []string
	queries []string
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{db: f}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.NewCommandTag("OK"), nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

// QueryRow answers the metadata table existence check with false, so no
// previous run is ever found.
func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	return fakeRow{}
}

type fakeRow struct{}

func (fakeRow) Scan(dest ...any) error {
	for _, d := range dest {
		if b, ok := d.(*bool); ok {
			*b = false
		}
	}
	return nil
}

type fakeTx struct {
	pgx.Tx

	db         *fakeDB
	statements []string
	args       [][]any
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.statements = append(t.statements, sql)
	t.args = append(t.args, args)
	if t.db.failOnExec > 0 && len(t.statements) == t.db.failOnExec {
		return pgconn.CommandTag{}, errors.New("value too long for type character varying(100)")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.rolledBack {
		return pgx.ErrTxClosed
	}
	if t.db.commitErr != nil {
		return t.db.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}
