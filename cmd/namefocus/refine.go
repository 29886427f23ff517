package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/namefocus/metrics"
	"github.com/revelaction/namefocus/proxy"
	sent "github.com/revelaction/namefocus/sentence"
	"github.com/revelaction/namefocus/stat"
	"github.com/revelaction/namefocus/storage"
	"github.com/revelaction/namefocus/storage/sqlite/zombiezen"
)

type RefineOptions struct {
	Out         string
	Label       string
	Workers     int
	DryRun      bool
	NoProgress  bool
	MetricsFile string
}

func refineCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "refine",
		Usage: "Replace the name foci of all docs and write the refined docs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output directory or SQLite file (default: doc path)"},
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Only docs with a label containing this string"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Number of docs resolved concurrently"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Resolve and report, do not write"},
			&cli.BoolFlag{Name: "no-progress", Usage: "Do not show the progress bar"},
			&cli.StringFlag{Name: "metrics-file", Usage: "Write Prometheus metrics to this file"},
		},
		Action: func(c *cli.Context) error {
			opts := RefineOptions{
				Out:         e.cfg.Output(),
				Label:       c.String("label"),
				Workers:     e.cfg.Workers,
				DryRun:      c.Bool("dry-run"),
				NoProgress:  c.Bool("no-progress"),
				MetricsFile: e.cfg.MetricsFile,
			}
			if c.IsSet("out") {
				opts.Out = c.String("out")
			}
			if c.IsSet("workers") {
				opts.Workers = c.Int("workers")
			}
			if c.IsSet("metrics-file") {
				opts.MetricsFile = c.String("metrics-file")
			}

			_, err := e.refineCommand(c.Context, opts)
			return err
		},
	}
}

func (e *env) refineCommand(ctx context.Context, opts RefineOptions) (stat.Stats, error) {
	src, _, err := NewDocRepository(e.pools, e.cfg.DocPath)
	if err != nil {
		return stat.Stats{}, err
	}

	docs, err := loadDocs(src, opts.Label)
	if err != nil {
		return stat.Stats{}, err
	}

	r, err := e.resolver()
	if err != nil {
		return stat.Stats{}, err
	}

	var dst storage.DocWriter
	var runs *zombiezen.RunStore
	if !opts.DryRun {
		repo, pool, err := NewOutputRepository(e.pools, opts.Out)
		if err != nil {
			return stat.Stats{}, err
		}
		dst = repo
		if pool != nil {
			runs = zombiezen.NewRunStore(pool)
		}
	}

	runID := uuid.NewString()
	logger := e.logger.With("run", runID)
	logger.Info("refine started", "docs", len(docs), "workers", opts.Workers, "dry_run", opts.DryRun)

	var bar *uiprogress.Bar
	if !opts.NoProgress {
		progress := uiprogress.New()
		progress.SetOut(e.ui.Err)
		progress.Start()
		defer progress.Stop()

		bar = progress.AddBar(len(docs))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	hdl := stat.NewHandler()
	err = proxy.Batch(ctx, r, docs, opts.Workers, func(i int, doc sent.Doc, res proxy.Result) error {
		if dst != nil {
			if err := dst.Write(doc); err != nil {
				return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
			}
		}

		if runs != nil {
			if err := runs.Record(runID, doc.Title, res); err != nil {
				return fmt.Errorf("failed to record run for doc %s: %w", doc.Title, err)
			}
		}

		metrics.Observe(res)
		hdl.Aggregate(res)
		logger.Debug("doc refined", "doc", doc.Title, "anchors", res.Anchors, "proxies", res.Proxies)

		if bar != nil {
			bar.Incr()
		}
		return nil
	})
	if err != nil {
		return stat.Stats{}, err
	}

	if opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return stat.Stats{}, fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	stats := hdl.Get()
	logger.Info("refine finished", "retracted", stats.NumRetracted, "proxies", stats.NumProxies)

	fmt.Fprintf(e.ui.Out, "Run %s\n", runID)
	printStats(e.ui.Out, stats)

	return stats, nil
}

// loadDocs reads the content of every doc listed by the repository.
func loadDocs(repo storage.DocReader, label string) ([]sent.Doc, error) {
	list, err := repo.List(label)
	if err != nil {
		return nil, err
	}

	docs := make([]sent.Doc, 0, len(list))
	for _, meta := range list {
		doc, err := repo.Read(meta.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to read doc %s: %w", meta.Title, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func printStats(w io.Writer, stats stat.Stats) {
	fmt.Fprintf(w, "Num docs %d, sentences %d, foci %d\n", stats.NumDocs, stats.NumSentences, stats.NumFoci)
	fmt.Fprintf(w, "Name foci %d, retracted %d, retained %d\n", stats.NumAnchors, stats.NumRetracted, stats.NumRetained)
	fmt.Fprintf(w, "Proxies %d, per retracted focus %.2f\n", stats.NumProxies, stats.ProxiesPerAnchorMean)
	for _, l := range stats.Labels() {
		fmt.Fprintf(w, "%12s %d\n", l.Name, l.Count)
	}
}
