package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/namefocus/inspect"
	"github.com/revelaction/namefocus/render"
)

func inspectCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Interactive prompt showing sentences before and after resolution",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-color", Usage: "Do not highlight foci"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "Do not prefix sentences with doc and sentence ids"},
		},
		Action: func(c *cli.Context) error {
			repo, _, err := NewDocRepository(e.pools, e.cfg.DocPath)
			if err != nil {
				return err
			}

			res, err := e.resolver()
			if err != nil {
				return err
			}

			r := render.NewRenderer()
			r.W = e.ui.Out
			r.HasColor = !c.Bool("no-color")
			r.HasPrefix = !c.Bool("no-prefix")

			return inspect.NewHandler(repo, res, r).Run()
		},
	}
}
