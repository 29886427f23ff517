package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/namefocus/storage/filesystem"
)

type ImportDocOptions struct {
	From       string
	To         string
	NoProgress bool
}

func importDocCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import-doc",
		Usage: "Copy the JSON docs of a directory into a SQLite file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "Directory of JSON docs"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "SQLite file, created if needed"},
			&cli.BoolFlag{Name: "no-progress", Usage: "Do not show the progress bar"},
		},
		Action: func(c *cli.Context) error {
			return e.importDocCommand(ImportDocOptions{
				From:       c.String("from"),
				To:         c.String("to"),
				NoProgress: c.Bool("no-progress"),
			})
		},
	}
}

func (e *env) importDocCommand(opts ImportDocOptions) error {
	src, err := filesystem.NewDocStore(opts.From)
	if err != nil {
		return err
	}

	dst, _, err := openSQLite(e.pools, opts.To)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "Reading docs from %s...\n", opts.From)
	docs, err := src.List("")
	if err != nil {
		return err
	}

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

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			return fmt.Errorf("failed to read doc %s: %w", docMeta.Title, err)
		}

		if err := dst.Write(doc); err != nil {
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		count++
		if bar != nil {
			bar.Incr()
		}
	}

	e.logger.Info("docs imported", "count", count, "from", opts.From, "to", opts.To)
	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}
