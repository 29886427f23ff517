package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/namefocus/render"
)

type SentenceOptions struct {
	Refined bool
	Color   bool
}

func sentenceCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "Show the tokens, dependencies and foci of a sentence, or all sentences of a doc",
		ArgsUsage: "<docId> [sentenceId]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refined", Aliases: []string{"r"}, Usage: "Show the foci after resolution"},
			&cli.BoolFlag{Name: "color", Usage: "Highlight foci with colors"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 || c.NArg() > 2 {
				return fmt.Errorf("sentence command needs one or two arguments: <docId> [sentenceId]")
			}

			docId, err := strconv.Atoi(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid docId: %v", err)
			}

			var sentId *int
			if c.NArg() == 2 {
				id, err := strconv.Atoi(c.Args().Get(1))
				if err != nil {
					return fmt.Errorf("invalid sentenceId: %v", err)
				}
				sentId = &id
			}

			opts := SentenceOptions{Refined: c.Bool("refined"), Color: c.Bool("color")}
			return e.sentenceCommand(opts, docId, sentId)
		},
	}
}

// sentenceCommand shows one sentence in detail, or every sentence of the doc
// when sentId is nil.
func (e *env) sentenceCommand(opts SentenceOptions, docId int, sentId *int) error {
	repo, _, err := NewDocRepository(e.pools, e.cfg.DocPath)
	if err != nil {
		return err
	}

	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	if sentId != nil && (*sentId < 0 || *sentId >= len(doc.Sentences)) {
		return fmt.Errorf("sentence index %d out of bounds (0-%d)", *sentId, len(doc.Sentences)-1)
	}

	if opts.Refined {
		res, err := e.resolver()
		if err != nil {
			return err
		}
		doc, _ = res.ResolveDoc(doc)
	}

	r := render.NewRenderer()
	r.W = e.ui.Out
	r.HasColor = opts.Color
	r.HasPrefix = true

	if sentId == nil {
		r.Doc(doc)
		return nil
	}

	s := doc.Sentences[*sentId]
	r.AddDocName(doc.Id, doc.Title)
	r.Sentence(s)
	fmt.Fprintln(e.ui.Out)
	r.Tokens(s)
	fmt.Fprintln(e.ui.Out)
	r.Foci(s)

	return nil
}
