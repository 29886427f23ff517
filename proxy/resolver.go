// Package proxy replaces generic "name" foci with foci on the entities the
// "name" refers to.
//
// In "What is the name of the volcano?" the focus found upstream is "name",
// which says nothing about the expected answer. The resolver walks the
// dependency edges governed by "name", through prepositions and past
// determiners, and puts a new focus on every other dependent it reaches
// ("volcano"). When at least one such focus is found the "name" focus is
// retracted.
package proxy

import (
	"io"
	"log/slog"
	"time"

	sent "github.com/revelaction/namefocus/sentence"
)

// DefaultAnchor is the lemma of the foci the resolver replaces.
const DefaultAnchor = "name"

// Resolver rewrites the foci of sentences. It holds no per sentence state
// and is safe for concurrent use.
type Resolver struct {
	anchor string
	policy Policy
	logger *slog.Logger
}

type Option func(*Resolver)

// WithAnchor sets the lemma of the foci to replace. The match is exact.
func WithAnchor(lemma string) Option {
	return func(r *Resolver) {
		r.anchor = lemma
	}
}

// WithPolicy sets the edge label policy.
func WithPolicy(p Policy) Option {
	return func(r *Resolver) {
		r.policy = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		anchor: DefaultAnchor,
		policy: DefaultPolicy(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Anchor returns the lemma of the foci the resolver replaces.
func (r *Resolver) Anchor() string {
	return r.anchor
}

// Resolve returns a copy of s whose anchor foci are replaced by their
// proxies. Foci that are not anchored on the anchor lemma, and anchor foci
// without any proxy, are kept as they are. s is not modified.
//
// Kept foci come first, in input order, followed by the new proxies in walk
// order.
func (r *Resolver) Resolve(s sent.Sentence) (sent.Sentence, Result) {
	res := Result{Sentences: 1, Foci: len(s.Foci), Labels: map[string]int{}}

	if len(s.Foci) == 0 {
		return s, res
	}

	g := sent.NewGraph(s)

	kept := make([]sent.Focus, 0, len(s.Foci))
	var proxies []sent.Focus

	for _, f := range s.Foci {
		tok, ok := g.Token(f.Token)
		if !ok || tok.Lemma != r.anchor {
			kept = append(kept, f)
			continue
		}

		res.Anchors++

		terminals := r.expand(g, tok.Id, map[int]bool{}, map[int]bool{})
		if len(terminals) == 0 {
			r.logger.Debug("name focus retained", "doc", s.DocId, "sentence", s.Id, "token", tok.Id)
			res.Retained++
			kept = append(kept, f)
			continue
		}

		for _, e := range terminals {
			proxies = append(proxies, sent.NewProxyFocus(e.Dependent, f.Base))
			res.Labels[e.Type]++
		}

		r.logger.Debug("name focus retracted", "doc", s.DocId, "sentence", s.Id, "token", tok.Id, "proxies", len(terminals))
		res.Retracted++
		res.Proxies += len(terminals)
	}

	out := s
	out.Foci = append(kept, proxies...)
	return out, res
}

// expand returns the terminal edges reachable from gov. Transparent edges are
// followed, ignored ones skipped.
//
// A well formed dependency tree reaches every token by one path only.
// Malformed input may reach a token twice or loop: visited holds the
// governors already walked and found the terminal tokens already returned,
// so each terminal token yields at most one edge per anchor focus.
func (r *Resolver) expand(g *sent.Graph, gov int, visited, found map[int]bool) []sent.Edge {
	if visited[gov] {
		return nil
	}
	visited[gov] = true

	var terminals []sent.Edge
	for _, e := range g.Governed(gov) {
		switch r.policy.Action(e.Type) {
		case Transparent:
			terminals = append(terminals, r.expand(g, e.Dependent.Id, visited, found)...)
		case Ignored:
		default:
			if found[e.Dependent.Id] {
				continue
			}
			found[e.Dependent.Id] = true
			terminals = append(terminals, e)
		}
	}

	return terminals
}

// ResolveDoc resolves every sentence of doc and returns the new doc.
func (r *Resolver) ResolveDoc(doc sent.Doc) (sent.Doc, Result) {
	start := time.Now()
	total := Result{Labels: map[string]int{}}

	out := doc
	out.Sentences = make([]sent.Sentence, len(doc.Sentences))
	for i, s := range doc.Sentences {
		rs, res := r.Resolve(s)
		out.Sentences[i] = rs
		total.Add(res)
	}

	total.Duration = time.Since(start)
	return out, total
}
