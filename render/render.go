package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	sent "github.com/revelaction/namefocus/sentence"
)

const Defaultformat = "text"

var (
	Off = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{"text", "tokens", "json"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines how a sentence is shown
	//
	// text: the sentence with the foci highlighted
	// tokens: one line per token with its dependency data
	// json: the sentence as JSON
	Format string

	DocNames map[int]string
}

func NewRenderer() *Renderer {
	return &Renderer{W: os.Stdout, Format: Defaultformat, DocNames: map[int]string{}}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Doc renders all the sentences of doc in the current format.
func (r *Renderer) Doc(doc sent.Doc) {
	if r.Format == "json" {
		NewJSONRenderer(r.W).Render([]sent.Doc{doc})
		return
	}

	r.AddDocName(doc.Id, doc.Title)
	for _, s := range doc.Sentences {
		r.Render(s)
	}
}

// Render renders one sentence in the current format.
func (r *Renderer) Render(s sent.Sentence) {
	switch r.Format {
	case "json":
		NewJSONRenderer(r.W).Render([]sent.Doc{{Id: s.DocId, Sentences: []sent.Sentence{s}}})
	case "tokens":
		r.Sentence(s)
		fmt.Fprintln(r.W)
		r.Tokens(s)
	default:
		r.Sentence(s)
	}
}

// Sentence writes the sentence text with its foci highlighted. Without color
// upstream foci are shown as [word] and proxies as <word>.
func (r *Renderer) Sentence(s sent.Sentence) {
	fmt.Fprintf(r.W, "%s%s\n", r.prefix(s), r.SentenceString(s))
}

func (r *Renderer) SentenceString(s sent.Sentence) string {
	return strings.ReplaceAll(r.sentence(s.Tokens, focusMarks(s.Foci)), "\n", " ")
}

// Tokens writes one line per token: text, lemma, pos, id, head, dep and a
// focus mark.
func (r *Renderer) Tokens(s sent.Sentence) {
	marks := focusMarks(s.Foci)
	for _, token := range s.Tokens {
		fmt.Fprintf(r.W, "%20q %15q %8s %6d %6d %8s %s\n", token.Text, token.Lemma, token.Pos, token.Id, token.Head, token.Dep, marks[token.Id])
	}
}

// Foci writes one line per focus with its span and, for proxies, the token
// it replaced.
func (r *Renderer) Foci(s sent.Sentence) {
	g := sent.NewGraph(s)
	for _, f := range s.Foci {
		text := ""
		if t, ok := g.Token(f.Token); ok {
			text = t.Text
		}

		if f.IsProxy() {
			of := ""
			if t, ok := g.Token(*f.Proxy); ok {
				of = t.Text
			}
			fmt.Fprintf(r.W, "%6d %6d %20q <- %q\n", f.Begin, f.End, text, of)
			continue
		}

		fmt.Fprintf(r.W, "%6d %6d %20q\n", f.Begin, f.End, text)
	}
}

// focusMarks maps token ids to "focus" or "proxy".
func focusMarks(foci []sent.Focus) map[int]string {
	marks := make(map[int]string, len(foci))
	for _, f := range foci {
		if f.IsProxy() {
			marks[f.Token] = "proxy"
			continue
		}
		if _, ok := marks[f.Token]; !ok {
			marks[f.Token] = "focus"
		}
	}
	return marks
}

func (r *Renderer) sentence(sentence []sent.Token, marks map[int]string) string {
	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range sentence {
		l := len([]rune(token.Text))
		if i == 0 {
			str.WriteString(r.colorToken(token, marks))
			lastIdx = token.Idx
			lastLen = l
			continue
		}

		// both (or more) parts of a multi token word have the same `text`
		// and `idx` fields. The text is rendered once.
		diff := token.Idx - lastIdx

		if diff > 0 {
			str.WriteString(strings.Repeat(" ", max(diff-lastLen, 0)))
			str.WriteString(r.colorToken(token, marks))
		}

		lastIdx = token.Idx
		lastLen = l
	}

	return str.String()
}

func (r *Renderer) colorToken(token sent.Token, marks map[int]string) string {
	switch marks[token.Id] {
	case "focus":
		if r.HasColor {
			return Yellow256 + token.Text + Off
		}
		return "[" + token.Text + "]"
	case "proxy":
		if r.HasColor {
			return Green256 + token.Text + Off
		}
		return "<" + token.Text + ">"
	}

	return token.Text
}

func (r *Renderer) prefix(s sent.Sentence) string {
	if !r.HasPrefix {
		return ""
	}

	return fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(s.DocId), s.DocId, s.Id)
}

func (r *Renderer) title(docId int) string {
	title := r.DocNames[docId]
	var part string
	if len(title) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = title[:20]
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}

	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}
