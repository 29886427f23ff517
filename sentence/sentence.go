package sentence

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Sentence is a parsed question sentence with its dependency edges and the
// focus annotations covering it.
type Sentence struct {
	Id    int `json:"id"`
	DocId int `json:"doc_id"`

	Tokens []Token `json:"tokens"`

	// Deps are the explicit dependency edges of the sentence. If empty, the
	// edges are derived from the Head and Dep fields of the tokens.
	Deps []Dependency `json:"deps,omitempty"`

	Foci []Focus `json:"foci,omitempty"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	Id         int    `json:"id"`
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Begin is the offset of the first byte of the token in the doc.
func (t Token) Begin() int {
	return t.Idx
}

// End is the offset after the last byte of the token in the doc.
func (t Token) End() int {
	return t.Idx + len(t.Text)
}

// Dependency is a typed governor -> dependent edge between two tokens of the
// same sentence, referenced by token Id.
type Dependency struct {
	Governor  int    `json:"gov"`
	Dependent int    `json:"dep"`
	Type      string `json:"type"`
}

// Dependencies returns the dependency edges of the sentence. Explicit Deps
// win; otherwise one edge per non root token is built from its Head.
//
// A token is a root when its head is itself or points outside the sentence.
func (s Sentence) Dependencies() []Dependency {
	if len(s.Deps) > 0 {
		return s.Deps
	}

	ids := make(map[int]bool, len(s.Tokens))
	for _, t := range s.Tokens {
		ids[t.Id] = true
	}

	deps := make([]Dependency, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.Head == t.Id || !ids[t.Head] {
			continue
		}
		deps = append(deps, Dependency{Governor: t.Head, Dependent: t.Id, Type: t.Dep})
	}

	return deps
}

// Text joins the token texts, using the token offsets to restore spacing.
func (s Sentence) Text() string {
	var b []byte
	for i, t := range s.Tokens {
		if i > 0 && t.Idx > s.Tokens[i-1].End() {
			b = append(b, ' ')
		}
		b = append(b, t.Text...)
	}
	return string(b)
}
