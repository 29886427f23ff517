package zombiezen

import (
	"path/filepath"
	"testing"

	"github.com/revelaction/namefocus/proxy"
	sent "github.com/revelaction/namefocus/sentence"
	"github.com/revelaction/namefocus/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite/sqlitex"
)

func newPool(t *testing.T) *sqlitex.Pool {
	t.Helper()
	pool, err := NewPool(filepath.Join(t.TempDir(), "namefocus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, CreateSchemas(pool, DocsSchema, RefinementsSchema))
	return pool
}

// name of volcano, with a focus on "name"
func volcanoDoc(title string) sent.Doc {
	s := sent.Sentence{
		Tokens: []sent.Token{
			{Id: 0, Head: 0, Dep: "ROOT", Text: "name", Lemma: "name", Idx: 0},
			{Id: 1, Head: 0, Dep: "prep", Text: "of", Lemma: "of", Idx: 5},
			{Id: 2, Head: 1, Dep: "pobj", Text: "volcano", Lemma: "volcano", Idx: 8},
		},
		Deps: []sent.Dependency{
			{Governor: 0, Dependent: 1, Type: "prep"},
			{Governor: 1, Dependent: 2, Type: "pobj"},
		},
	}
	s.Foci = []sent.Focus{sent.NewFocus(s.Tokens[0])}

	return sent.Doc{Title: title, Labels: []string{"geo", "quiz"}, Sentences: []sent.Sentence{s, {Tokens: s.Tokens}}}
}

func TestDocStoreWriteRead(t *testing.T) {
	store := NewDocStore(newPool(t))

	require.NoError(t, store.Write(volcanoDoc("volcano")))

	docs, err := store.List("")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"geo", "quiz"}, docs[0].Labels)

	doc, err := store.Read(docs[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "volcano", doc.Title)
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, docs[0].Id, doc.Sentences[0].DocId)
	assert.Len(t, doc.Sentences[0].Tokens, 3)
	assert.Len(t, doc.Sentences[0].Deps, 2)
	assert.Equal(t, []sent.Focus{{Begin: 0, End: 4, Base: 0, Token: 0}}, doc.Sentences[0].Foci)
	assert.Empty(t, doc.Sentences[1].Foci)
}

func TestDocStoreWriteRefined(t *testing.T) {
	store := NewDocStore(newPool(t))
	require.NoError(t, store.Write(volcanoDoc("volcano")))

	docs, err := store.List("")
	require.NoError(t, err)
	doc, err := store.Read(docs[0].Id)
	require.NoError(t, err)

	refined, _ := proxy.NewResolver().ResolveDoc(doc)
	require.NoError(t, store.Write(refined))

	again, err := store.List("")
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, docs[0].Id, again[0].Id)

	doc, err = store.Read(docs[0].Id)
	require.NoError(t, err)
	require.Len(t, doc.Sentences[0].Foci, 1)
	f := doc.Sentences[0].Foci[0]
	assert.Equal(t, 2, f.Base)
	assert.Equal(t, 8, f.Begin)
	assert.Equal(t, 15, f.End)
	require.True(t, f.IsProxy())
	assert.Equal(t, 0, *f.Proxy)
}

func TestDocStoreListLabels(t *testing.T) {
	store := NewDocStore(newPool(t))
	require.NoError(t, store.Write(volcanoDoc("a")))
	other := volcanoDoc("b")
	other.Labels = []string{"people"}
	require.NoError(t, store.Write(other))

	docs, err := store.List("peo")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b", docs[0].Title)
}

func TestDocStoreListLabelsDoNotSpanSeparator(t *testing.T) {
	store := NewDocStore(newPool(t))
	doc := volcanoDoc("d")
	doc.Labels = []string{"geo", "hist"}
	require.NoError(t, store.Write(doc))

	docs, err := store.List("o,h")
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = store.List("ist")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocStoreReadNotFound(t *testing.T) {
	store := NewDocStore(newPool(t))

	_, err := store.Read(42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunStore(t *testing.T) {
	runs := NewRunStore(newPool(t))

	require.NoError(t, runs.Record("run-1", "wife", proxy.Result{Sentences: 3, Anchors: 1, Retracted: 1, Proxies: 2}))
	require.NoError(t, runs.Record("run-1", "volcano", proxy.Result{Sentences: 1}))
	require.NoError(t, runs.Record("run-2", "volcano", proxy.Result{}))

	got, err := runs.Runs("run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "volcano", got[0].DocTitle)
	assert.Equal(t, "wife", got[1].DocTitle)
	assert.Equal(t, 2, got[1].Proxies)
	assert.NotEmpty(t, got[1].CreatedAt)
}
