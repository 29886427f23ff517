package inspect

import (
	"strconv"

	"github.com/c-bata/go-prompt"

	sent "github.com/revelaction/namefocus/sentence"
)

// Suggestions returns the prompt commands followed by one suggestion per doc
// id, described by its title.
func Suggestions(docs []sent.Doc) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "list", Description: "list docs"},
		{Text: "quit", Description: "exit"},
	}

	for _, d := range docs {
		s = append(s, prompt.Suggest{Text: strconv.Itoa(d.Id), Description: d.Title})
	}

	return s
}
