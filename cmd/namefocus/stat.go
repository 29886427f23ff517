package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	sent "github.com/revelaction/namefocus/sentence"
	"github.com/revelaction/namefocus/stat"
)

func statCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "Report what refine would do, for one doc or all docs",
		ArgsUsage: "[docId]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "Only docs with a label containing this string"},
		},
		Action: func(c *cli.Context) error {
			var docId *int
			if c.NArg() > 0 {
				id, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("invalid docId: %v", err)
				}
				docId = &id
			}
			_, err := e.statCommand(docId, c.String("label"))
			return err
		},
	}
}

func (e *env) statCommand(docId *int, label string) (stat.Stats, error) {
	repo, _, err := NewDocRepository(e.pools, e.cfg.DocPath)
	if err != nil {
		return stat.Stats{}, err
	}

	var docs []sent.Doc
	if docId != nil {
		doc, err := repo.Read(*docId)
		if err != nil {
			return stat.Stats{}, err
		}
		docs = append(docs, doc)
	} else {
		docs, err = loadDocs(repo, label)
		if err != nil {
			return stat.Stats{}, err
		}
	}

	r, err := e.resolver()
	if err != nil {
		return stat.Stats{}, err
	}

	hdl := stat.NewHandler()
	for _, doc := range docs {
		_, res := r.ResolveDoc(doc)
		hdl.Aggregate(res)
	}

	stats := hdl.Get()
	printStats(e.ui.Out, stats)
	return stats, nil
}
