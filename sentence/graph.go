package sentence

// Edge is an outgoing dependency edge as seen from its governor.
type Edge struct {
	Dependent Token
	Type      string
}

// Graph is a read-only view of the dependency edges of one sentence, indexed
// by governor token Id. It is built once and never modified afterwards.
type Graph struct {
	tokens   map[int]Token
	governed map[int][]Edge
}

// NewGraph builds the view for s. Edges whose dependent is not a token of
// the sentence are dropped.
func NewGraph(s Sentence) *Graph {
	g := &Graph{
		tokens:   make(map[int]Token, len(s.Tokens)),
		governed: make(map[int][]Edge),
	}

	for _, t := range s.Tokens {
		g.tokens[t.Id] = t
	}

	for _, d := range s.Dependencies() {
		dep, ok := g.tokens[d.Dependent]
		if !ok {
			continue
		}
		g.governed[d.Governor] = append(g.governed[d.Governor], Edge{Dependent: dep, Type: d.Type})
	}

	return g
}

// Token returns the token with the given Id.
func (g *Graph) Token(id int) (Token, bool) {
	t, ok := g.tokens[id]
	return t, ok
}

// Governed returns the edges whose governor is the token with the given Id,
// in input order. The returned slice must not be modified.
func (g *Graph) Governed(id int) []Edge {
	return g.governed[id]
}
