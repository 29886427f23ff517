package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/namefocus/proxy"
	"github.com/revelaction/namefocus/render"
	"github.com/revelaction/namefocus/storage"
)

// Handler is an interactive prompt that shows the foci of a sentence before
// and after resolution.
type Handler struct {
	DocRepo  storage.DocReader
	Resolver *proxy.Resolver
	Renderer *render.Renderer
}

func NewHandler(dr storage.DocReader, res *proxy.Resolver, r *render.Renderer) *Handler {
	return &Handler{
		DocRepo:  dr,
		Resolver: res,
		Renderer: r,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Renderer.W, "🔑 <docId> [sentId], list, Ctrl+F: next Format, Ctrl+X: toggle prefix, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("namefocus inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Renderer.W, "Prefix set to: %t\n", h.Renderer.HasPrefix)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}

		if in == "" {
			continue
		}

		history = append(history, in)
		if err := h.Exec(in); err != nil {
			fmt.Fprintf(h.Renderer.W, "❌ %s\n", err)
		}
	}
}

// Exec runs one prompt line: "list", "<docId>" or "<docId> <sentId>".
func (h *Handler) Exec(in string) error {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return nil
	}

	if fields[0] == "list" {
		return h.list()
	}

	docId, sentId, err := parse(fields)
	if err != nil {
		return err
	}

	doc, err := h.DocRepo.Read(docId)
	if err != nil {
		return err
	}
	h.Renderer.AddDocName(doc.Id, doc.Title)

	if sentId != nil && (*sentId < 0 || *sentId >= len(doc.Sentences)) {
		return fmt.Errorf("sentence index %d out of bounds (0-%d)", *sentId, len(doc.Sentences)-1)
	}

	for i, s := range doc.Sentences {
		if sentId != nil && i != *sentId {
			continue
		}

		refined, res := h.Resolver.Resolve(s)
		if res.Anchors == 0 && sentId == nil {
			continue
		}

		fmt.Fprintf(h.Renderer.W, "✍  %d-%d before\n", doc.Id, i)
		h.Renderer.Render(s)
		h.Renderer.Foci(s)
		fmt.Fprintf(h.Renderer.W, "✍  %d-%d after (%d retracted, %d proxies)\n", doc.Id, i, res.Retracted, res.Proxies)
		h.Renderer.Render(refined)
		h.Renderer.Foci(refined)
	}

	return nil
}

func (h *Handler) list() error {
	docs, err := h.DocRepo.List("")
	if err != nil {
		return err
	}

	for _, d := range docs {
		fmt.Fprintf(h.Renderer.W, "📖 %d %s \n", d.Id, d.Title)
	}
	return nil
}

func parse(fields []string) (int, *int, error) {
	if len(fields) > 2 {
		return 0, nil, errors.New("usage: <docId> [sentId]")
	}

	docId, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid docId: %q", fields[0])
	}

	if len(fields) == 1 {
		return docId, nil, nil
	}

	sentId, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid sentId: %q", fields[1])
	}

	return docId, &sentId, nil
}

func (h *Handler) completer() prompt.Completer {
	var suggestions []prompt.Suggest
	if docs, err := h.DocRepo.List(""); err == nil {
		suggestions = Suggestions(docs)
	}

	return func(d prompt.Document) []prompt.Suggest {
		// only the doc id is completed
		if strings.Contains(d.TextBeforeCursor(), " ") {
			return nil
		}
		return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
	}
}
