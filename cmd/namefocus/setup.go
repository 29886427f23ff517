package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/namefocus/storage"
	"github.com/revelaction/namefocus/storage/filesystem"
	"github.com/revelaction/namefocus/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// NewDocRepository opens an existing repository: a directory of JSON docs or
// a SQLite file. The SQLite pool is returned too, nil for directories.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, *sqlitex.Pool, error) {
	if path == "" {
		return nil, nil, errors.New("Doc path must be specified via -d, doc_path or NAMEFOCUS_DOC_PATH")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		repo, err := filesystem.NewDocStore(path)
		return repo, nil, err
	}

	return openSQLite(p, path)
}

// NewOutputRepository opens the repository refined docs are written to,
// creating it if needed. Paths with a .db, .sqlite or .sqlite3 extension are
// SQLite files, anything else is a directory.
func NewOutputRepository(p *Pool, path string) (storage.DocRepository, *sqlitex.Pool, error) {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			repo, err := filesystem.NewDocStore(path)
			return repo, nil, err
		}
		return openSQLite(p, path)
	}

	switch filepath.Ext(path) {
	case ".db", ".sqlite", ".sqlite3":
		return openSQLite(p, path)
	}

	repo, err := filesystem.NewDocStore(path)
	return repo, nil, err
}

func openSQLite(p *Pool, path string) (storage.DocRepository, *sqlitex.Pool, error) {
	pool, err := p.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if err := zombiezen.CreateSchemas(pool, zombiezen.DocsSchema, zombiezen.RefinementsSchema); err != nil {
		return nil, nil, err
	}

	return zombiezen.NewDocStore(pool), pool, nil
}
