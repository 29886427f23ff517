package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/namefocus/sentence"
	"github.com/revelaction/namefocus/storage/filesystem"
	"github.com/revelaction/namefocus/storage/sqlite/zombiezen"
)

// "What name of volcano", focus on "name"
func volcanoDoc() sent.Doc {
	s := sent.Sentence{
		Tokens: []sent.Token{
			{Id: 0, Head: 1, Dep: "det", Text: "What", Lemma: "what", Idx: 0},
			{Id: 1, Head: 1, Dep: "ROOT", Text: "name", Lemma: "name", Idx: 5},
			{Id: 2, Head: 1, Dep: "prep", Text: "of", Lemma: "of", Idx: 10},
			{Id: 3, Head: 2, Dep: "pobj", Text: "volcano", Lemma: "volcano", Idx: 13},
		},
	}
	s.Foci = []sent.Focus{sent.NewFocus(s.Tokens[1])}

	return sent.Doc{Labels: []string{"geo"}, Sentences: []sent.Sentence{s}}
}

func writeDocDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	data, err := json.Marshal(volcanoDoc())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "volcano.json"), data, 0644))
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"NAMEFOCUS_DOC_PATH", "NAMEFOCUS_CONFIG", "NAMEFOCUS_LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	var out, errOut bytes.Buffer
	err := newApp(UI{Out: &out, Err: &errOut}).Run(append([]string{"namefocus"}, args...))
	return out.String(), errOut.String(), err
}

func TestRefineDirectory(t *testing.T) {
	dir := writeDocDir(t)
	out := filepath.Join(t.TempDir(), "refined")

	stdout, stderr, err := run(t, "-d", dir, "refine", "--no-progress", "-o", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Name foci 1, retracted 1, retained 0")
	assert.Contains(t, stdout, "Proxies 1")
	assert.Contains(t, stderr, "refine finished")

	doc, err := filesystem.ReadDoc(filepath.Join(out, "volcano.json"))
	require.NoError(t, err)
	require.Len(t, doc.Sentences[0].Foci, 1)
	f := doc.Sentences[0].Foci[0]
	assert.Equal(t, 3, f.Token)
	require.True(t, f.IsProxy())
	assert.Equal(t, 1, *f.Proxy)

	// the source is left untouched
	src, err := filesystem.ReadDoc(filepath.Join(dir, "volcano.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, src.Sentences[0].Foci[0].Token)
}

func TestRefineDryRun(t *testing.T) {
	dir := writeDocDir(t)

	stdout, _, err := run(t, "-d", dir, "refine", "--no-progress", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "retracted 1")

	doc, err := filesystem.ReadDoc(filepath.Join(dir, "volcano.json"))
	require.NoError(t, err)
	assert.False(t, doc.Sentences[0].Foci[0].IsProxy())
}

func TestRefineSQLite(t *testing.T) {
	dir := writeDocDir(t)
	db := filepath.Join(t.TempDir(), "refined.db")

	stdout, _, err := run(t, "-d", dir, "refine", "--no-progress", "-o", db)
	require.NoError(t, err)

	m := regexp.MustCompile(`Run (\S+)`).FindStringSubmatch(stdout)
	require.Len(t, m, 2)

	pool, err := zombiezen.NewPool(db)
	require.NoError(t, err)
	defer pool.Close()

	runs, err := zombiezen.NewRunStore(pool).Runs(m[1])
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "volcano", runs[0].DocTitle)
	assert.Equal(t, 1, runs[0].Proxies)

	docs, err := zombiezen.NewDocStore(pool).List("geo")
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestRefineConfigPolicy(t *testing.T) {
	dir := writeDocDir(t)
	cfg := filepath.Join(t.TempDir(), "namefocus.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[resolver.policy]\nprep = \"ignored\"\n"), 0644))

	stdout, _, err := run(t, "-c", cfg, "-d", dir, "refine", "--no-progress", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Name foci 1, retracted 0, retained 1")
}

func TestRefineInvalidConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "namefocus.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[log]\nlevel = \"loud\"\n"), 0644))

	_, _, err := run(t, "-c", cfg, "-d", t.TempDir(), "refine")
	assert.Error(t, err)
}

func TestRefineMissingDocPath(t *testing.T) {
	_, _, err := run(t, "refine", "--no-progress")
	assert.ErrorContains(t, err, "Doc path must be specified")
}

func TestStat(t *testing.T) {
	dir := writeDocDir(t)

	stdout, _, err := run(t, "-d", dir, "stat", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Num docs 1, sentences 1, foci 1")
	assert.Contains(t, stdout, "pobj 1")

	_, _, err = run(t, "-d", dir, "stat", "3")
	assert.Error(t, err)
}

func TestSentence(t *testing.T) {
	dir := writeDocDir(t)

	stdout, _, err := run(t, "-d", dir, "sentence", "0", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "What [name] of volcano")

	stdout, _, err = run(t, "-d", dir, "sentence", "--refined", "0", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "What name of <volcano>")
	assert.Contains(t, stdout, `<- "name"`)

	_, _, err = run(t, "-d", dir, "sentence")
	assert.Error(t, err)

	_, _, err = run(t, "-d", dir, "sentence", "0", "5")
	assert.Error(t, err)
}

func TestSentenceWholeDoc(t *testing.T) {
	dir := writeDocDir(t)

	stdout, _, err := run(t, "-d", dir, "sentence", "--refined", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[volcano")
	assert.Contains(t, stdout, "What name of <volcano>")
	assert.NotContains(t, stdout, "pobj")
}

func TestImportDoc(t *testing.T) {
	dir := writeDocDir(t)
	db := filepath.Join(t.TempDir(), "docs.db")

	stdout, _, err := run(t, "import-doc", "--no-progress", "--from", dir, "--to", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully imported 1 docs")

	stdout, _, err = run(t, "-d", db, "stat")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Num docs 1")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "namefocus version dev")
}
