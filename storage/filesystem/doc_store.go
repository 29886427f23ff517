package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sent "github.com/revelaction/namefocus/sentence"
	"github.com/revelaction/namefocus/storage"
)

// DocStore keeps one JSON file per doc in a directory. The doc Id is the
// position of the file in the sorted directory listing and the title is the
// file name.
type DocStore struct {
	docDir string
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store, creating docDir if
// needed.
func NewDocStore(docDir string) (*DocStore, error) {
	if err := os.MkdirAll(docDir, 0755); err != nil {
		return nil, err
	}
	return &DocStore{docDir: docDir}, nil
}

func (h *DocStore) names() ([]string, error) {
	files, err := os.ReadDir(h.docDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		names = append(names, file.Name())
	}

	sort.Strings(names)
	return names, nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	names, err := h.names()
	if err != nil {
		return nil, err
	}

	var docs []sent.Doc
	for i, name := range names {
		doc, err := ReadDoc(filepath.Join(h.docDir, name))
		if err != nil {
			return nil, err
		}

		if labelMatch != "" && !hasLabel(doc.Labels, labelMatch) {
			continue
		}

		docs = append(docs, sent.Doc{Id: i, Title: title(name), Labels: doc.Labels})
	}

	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	names, err := h.names()
	if err != nil {
		return sent.Doc{}, err
	}

	if id < 0 || id >= len(names) {
		return sent.Doc{}, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}

	doc, err := ReadDoc(filepath.Join(h.docDir, names[id]))
	if err != nil {
		return sent.Doc{}, err
	}

	doc.Id = id
	doc.Title = title(names[id])
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = id
	}

	return doc, nil
}

// Write stores doc as <title>.json, replacing an existing file.
func (h *DocStore) Write(doc sent.Doc) error {
	if doc.Title == "" {
		return fmt.Errorf("doc has no title")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(doc.Title, ".json") + ".json"
	return os.WriteFile(filepath.Join(h.docDir, name), data, 0644)
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

// title is the file name without extension, so that Write of a read doc
// replaces its file.
func title(name string) string {
	return strings.TrimSuffix(name, ".json")
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}
