package main

import (
	"errors"

	"github.com/revelaction/namefocus/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool keeps one SQLite connection pool per database path.
type Pool struct {
	p map[string]*sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if pool, ok := p.p[path]; ok {
		return pool, nil
	}
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	if p.p == nil {
		p.p = map[string]*sqlitex.Pool{}
	}
	p.p[path] = pool
	return pool, nil
}

func (p *Pool) Close() error {
	var errs []error
	for path, pool := range p.p {
		errs = append(errs, pool.Close())
		delete(p.p, path)
	}
	return errors.Join(errs...)
}
