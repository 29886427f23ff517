package zombiezen

import (
	"context"

	"github.com/revelaction/namefocus/proxy"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Run is the recorded outcome of refining one doc in a refine run.
type Run struct {
	RunID     string
	DocTitle  string
	Sentences int
	Anchors   int
	Retracted int
	Retained  int
	Proxies   int
	CreatedAt string
}

// RunStore records refine runs in the refinements table.
type RunStore struct {
	pool *sqlitex.Pool
}

func NewRunStore(pool *sqlitex.Pool) *RunStore {
	return &RunStore{pool: pool}
}

func (h *RunStore) Record(runID string, docTitle string, res proxy.Result) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return sqlitex.Execute(conn, `INSERT INTO refinements
		(run_id, doc_title, sentences, anchors, retracted, retained, proxies)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{runID, docTitle, res.Sentences, res.Anchors, res.Retracted, res.Retained, res.Proxies},
	})
}

// Runs returns the records of a run, by doc title.
func (h *RunStore) Runs(runID string) ([]Run, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var runs []Run
	err = sqlitex.Execute(conn, `SELECT run_id, doc_title, sentences, anchors, retracted, retained, proxies, created_at
		FROM refinements WHERE run_id = ? ORDER BY doc_title`, &sqlitex.ExecOptions{
		Args: []any{runID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			runs = append(runs, Run{
				RunID:     stmt.ColumnText(0),
				DocTitle:  stmt.ColumnText(1),
				Sentences: stmt.ColumnInt(2),
				Anchors:   stmt.ColumnInt(3),
				Retracted: stmt.ColumnInt(4),
				Retained:  stmt.ColumnInt(5),
				Proxies:   stmt.ColumnInt(6),
				CreatedAt: stmt.ColumnText(7),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}
