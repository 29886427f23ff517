package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sent "github.com/revelaction/namefocus/sentence"
	"github.com/revelaction/namefocus/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore stores docs in SQLite. Sentence tokens and dependencies are kept
// as JSON, foci in their own table so that a refinement can rewrite them.
type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}
			labelsStr := stmt.ColumnText(2)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}

			// labels are matched one by one, never across the separator
			if labelMatch != "" && !hasLabel(doc.Labels, labelMatch) {
				return nil
			}

			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			if labelsStr := stmt.ColumnText(1); labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}

	// sentence rowid -> index in doc.Sentences
	rowIdx := map[int64]int{}

	err = sqlitex.Execute(conn, "SELECT rowid, data FROM sentences WHERE doc_id = ? ORDER BY sent_id", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var s sent.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &s); err != nil {
				return err
			}
			s.DocId = id
			rowIdx[stmt.ColumnInt64(0)] = len(doc.Sentences)
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	err = sqlitex.Execute(conn, `SELECT f.sentence_rowid, f.span_begin, f.span_end, f.base, f.token, f.proxy_of
		FROM foci f JOIN sentences s ON s.rowid = f.sentence_rowid
		WHERE s.doc_id = ? ORDER BY f.sentence_rowid, f.position`, &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			idx, ok := rowIdx[stmt.ColumnInt64(0)]
			if !ok {
				return nil
			}
			f := sent.Focus{
				Begin: stmt.ColumnInt(1),
				End:   stmt.ColumnInt(2),
				Base:  stmt.ColumnInt(3),
				Token: stmt.ColumnInt(4),
			}
			if stmt.ColumnType(5) != sqlite.TypeNull {
				of := stmt.ColumnInt(5)
				f.Proxy = &of
			}
			doc.Sentences[idx].Foci = append(doc.Sentences[idx].Foci, f)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// Write inserts doc, or replaces the sentences and foci of the doc with the
// same title. The doc keeps its Id when replaced.
func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	docID, err := upsertDoc(conn, doc)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "DELETE FROM foci WHERE sentence_rowid IN (SELECT rowid FROM sentences WHERE doc_id = ?)", &sqlitex.ExecOptions{
		Args: []any{docID},
	})
	if err != nil {
		return fmt.Errorf("failed to delete foci: %w", err)
	}

	err = sqlitex.Execute(conn, "DELETE FROM sentences WHERE doc_id = ?", &sqlitex.ExecOptions{
		Args: []any{docID},
	})
	if err != nil {
		return fmt.Errorf("failed to delete sentences: %w", err)
	}

	for i, s := range doc.Sentences {
		foci := s.Foci
		s.Foci = nil
		s.DocId = 0

		data, err := json.Marshal(s)
		if err != nil {
			return err
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{docID, i, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		for pos, f := range foci {
			var proxyOf any
			if f.Proxy != nil {
				proxyOf = *f.Proxy
			}

			err = sqlitex.Execute(conn, "INSERT INTO foci (sentence_rowid, position, span_begin, span_end, base, token, proxy_of) VALUES (?, ?, ?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
				Args: []any{sentRowID, pos, f.Begin, f.End, f.Base, f.Token, proxyOf},
			})
			if err != nil {
				return fmt.Errorf("failed to insert focus: %w", err)
			}
		}
	}

	return nil
}

func upsertDoc(conn *sqlite.Conn, doc sent.Doc) (int64, error) {
	labels := strings.Join(doc.Labels, ",")

	var docID int64
	found := false
	err := sqlitex.Execute(conn, "SELECT id FROM docs WHERE title = ?", &sqlitex.ExecOptions{
		Args: []any{doc.Title},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			docID = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return 0, err
	}

	if found {
		err = sqlitex.Execute(conn, "UPDATE docs SET labels = ? WHERE id = ?", &sqlitex.ExecOptions{
			Args: []any{labels, docID},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to update doc: %w", err)
		}
		return docID, nil
	}

	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []any{doc.Title, labels},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc: %w", err)
	}

	return conn.LastInsertRowID(), nil
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}
