package proxy

import (
	"context"
	"runtime"

	sent "github.com/revelaction/namefocus/sentence"
	"golang.org/x/sync/errgroup"
)

// Batch resolves docs concurrently with at most workers goroutines, one doc
// per goroutine. onDoc is called with each resolved doc, its index in docs
// and its result; calls are serialized, in completion order.
//
// If onDoc returns an error or ctx is done, no further doc is started and the
// first error is returned.
func Batch(ctx context.Context, r *Resolver, docs []sent.Doc, workers int, onDoc func(i int, doc sent.Doc, res Result) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type done struct {
		i   int
		doc sent.Doc
		res Result
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make(chan done)
	collected := make(chan error, 1)

	go func() {
		var err error
		for d := range results {
			if err != nil {
				continue
			}
			if err = onDoc(d.i, d.doc, d.res); err != nil {
				cancel()
			}
		}
		collected <- err
	}()

	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}

		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rd, res := r.ResolveDoc(doc)
			select {
			case results <- done{i: i, doc: rd, res: res}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	err := g.Wait()
	close(results)

	if cbErr := <-collected; cbErr != nil {
		return cbErr
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
