package stat

import (
	"sort"

	"github.com/revelaction/namefocus/proxy"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs      int
	NumSentences int
	NumFoci      int

	NumAnchors   int
	NumRetracted int
	NumRetained  int
	NumProxies   int

	// ProxiesPerAnchorMean is computed over retracted anchors only.
	ProxiesPerAnchorMean float64

	// LabelDis is the distribution of the dependency labels that produced
	// proxies.
	LabelDis map[string]int
}

// Label is a dependency label with its count.
type Label struct {
	Name  string
	Count int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{LabelDis: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the result of resolving one doc.
func (h *Handler) Aggregate(res proxy.Result) {
	h.stats.NumDocs++
	h.stats.NumSentences += res.Sentences
	h.stats.NumFoci += res.Foci
	h.stats.NumAnchors += res.Anchors
	h.stats.NumRetracted += res.Retracted
	h.stats.NumRetained += res.Retained
	h.stats.NumProxies += res.Proxies

	for l, n := range res.Labels {
		h.stats.LabelDis[l] += n
	}

	if h.stats.NumRetracted > 0 {
		h.stats.ProxiesPerAnchorMean = float64(h.stats.NumProxies) / float64(h.stats.NumRetracted)
	}
}

// Labels returns the label distribution, most frequent first.
func (s Stats) Labels() []Label {
	labels := make([]Label, 0, len(s.LabelDis))
	for name, n := range s.LabelDis {
		labels = append(labels, Label{Name: name, Count: n})
	}

	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Count != labels[j].Count {
			return labels[i].Count > labels[j].Count
		}
		return labels[i].Name < labels[j].Name
	})

	return labels
}
