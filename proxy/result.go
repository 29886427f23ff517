package proxy

import "time"

// Result counts what a resolution pass did.
type Result struct {
	Sentences int
	Foci      int

	// Anchors is the number of foci anchored on the anchor lemma.
	Anchors int

	// Retracted anchors got at least one proxy, Retained ones got none.
	Retracted int
	Retained  int

	Proxies int

	// Labels counts the dependency type of the edge that produced each proxy.
	Labels map[string]int

	// Duration is the time spent resolving, set by ResolveDoc.
	Duration time.Duration
}

// Add merges o into r.
func (r *Result) Add(o Result) {
	r.Sentences += o.Sentences
	r.Foci += o.Foci
	r.Anchors += o.Anchors
	r.Retracted += o.Retracted
	r.Retained += o.Retained
	r.Proxies += o.Proxies
	r.Duration += o.Duration

	if len(o.Labels) > 0 && r.Labels == nil {
		r.Labels = make(map[string]int, len(o.Labels))
	}
	for l, n := range o.Labels {
		r.Labels[l] += n
	}
}
