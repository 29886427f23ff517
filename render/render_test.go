package render

import (
	"bytes"
	"strings"
	"testing"

	sent "github.com/revelaction/namefocus/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refined() sent.Sentence {
	toks := []sent.Token{
		{Id: 0, Head: 0, Dep: "ROOT", Text: "What", Lemma: "what", Pos: "PRON", Idx: 0},
		{Id: 1, Head: 0, Dep: "nsubj", Text: "name", Lemma: "name", Pos: "NOUN", Idx: 5},
		{Id: 2, Head: 1, Dep: "prep", Text: "of", Lemma: "of", Pos: "ADP", Idx: 10},
		{Id: 3, Head: 2, Dep: "pobj", Text: "volcano", Lemma: "volcano", Pos: "NOUN", Idx: 13},
		{Id: 4, Head: 0, Dep: "punct", Text: "?", Lemma: "?", Pos: "PUNCT", Idx: 20},
	}
	return sent.Sentence{
		Id:     2,
		DocId:  7,
		Tokens: toks,
		Foci:   []sent.Focus{sent.NewFocus(toks[0]), sent.NewProxyFocus(toks[3], 1)},
	}
}

func newTestRenderer(buf *bytes.Buffer) *Renderer {
	r := NewRenderer()
	r.W = buf
	return r
}

func TestSentenceNoColor(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	r.Sentence(refined())

	assert.Equal(t, "[What] name of <volcano>?\n", buf.String())
}

func TestSentenceColor(t *testing.T) {
	r := NewRenderer()
	r.HasColor = true

	got := r.SentenceString(refined())

	assert.Contains(t, got, Yellow256+"What"+Off)
	assert.Contains(t, got, Green256+"volcano"+Off)
}

func TestSentencePrefix(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HasPrefix = true
	r.AddDocName(7, "questions")

	r.Sentence(refined())

	assert.True(t, strings.HasPrefix(buf.String(), "[questions             7     2] ✍  "), buf.String())
}

func TestSentenceMultiTokenWord(t *testing.T) {
	s := sent.Sentence{Tokens: []sent.Token{
		{Id: 0, Text: "envolverse", Idx: 0},
		{Id: 1, Text: "envolverse", Idx: 0},
		{Id: 2, Text: "ya", Idx: 11},
	}}

	assert.Equal(t, "envolverse ya", NewRenderer().SentenceString(s))
}

func TestTokens(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	r.Tokens(refined())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[0], "focus"))
	assert.True(t, strings.HasSuffix(lines[3], "proxy"))
	assert.Contains(t, lines[2], "prep")
}

func TestFoci(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	r.Foci(refined())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"volcano" <- "name"`)
}

func TestRenderJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.Format = "json"

	r.Render(refined())

	assert.Contains(t, buf.String(), `"proxy":1`)
}

func TestNextFormat(t *testing.T) {
	r := NewRenderer()
	var seen []string
	for range SupportedFormats() {
		r.NextFormat()
		seen = append(seen, r.Format)
	}

	assert.Equal(t, []string{"tokens", "json", "text"}, seen)
}

func TestNextPrefix(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.AddDocName(7, "questions")

	r.NextPrefix()
	r.Sentence(refined())
	assert.True(t, strings.HasPrefix(buf.String(), "[questions"), buf.String())

	buf.Reset()
	r.NextPrefix()
	r.Sentence(refined())
	assert.Equal(t, "[What] name of <volcano>?\n", buf.String())
}

func TestDoc(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HasPrefix = true

	second := refined()
	second.Id = 3
	r.Doc(sent.Doc{Id: 7, Title: "questions", Sentences: []sent.Sentence{refined(), second}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "questions")
	assert.Contains(t, lines[1], "3] ✍  [What] name of <volcano>?")
}

func TestDocJSON(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.Format = "json"

	r.Doc(sent.Doc{Id: 7, Title: "questions", Sentences: []sent.Sentence{refined()}})

	assert.Contains(t, buf.String(), `"title":"questions"`)
}
