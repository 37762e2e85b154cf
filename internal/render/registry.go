package render

// Anchor is the on-screen position of one highlighted search match: the
// view line, the display column where the match starts and its display width.
type Anchor struct {
	Line   int
	Column int
	Width  int
}

// Registry hands out match IDs in render order and remembers where each
// match was drawn. IDs start at 0 after every Reset and are dense, so the
// number of registered anchors is also the match count.
type Registry struct {
	anchors []Anchor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Reset forgets every anchor; the next Register returns ID 0.
func (r *Registry) Reset() {
	r.anchors = r.anchors[:0]
}

// Register records the anchor of the next match and returns its ID.
func (r *Registry) Register(a Anchor) int {
	r.anchors = append(r.anchors, a)
	return len(r.anchors) - 1
}

// Lookup returns the anchor registered for id.
func (r *Registry) Lookup(id int) (Anchor, bool) {
	if id < 0 || id >= len(r.anchors) {
		return Anchor{}, false
	}
	return r.anchors[id], true
}

// Len returns the number of matches registered since the last Reset.
func (r *Registry) Len() int {
	return len(r.anchors)
}

// Anchors returns a copy of the registered anchors indexed by match ID.
func (r *Registry) Anchors() []Anchor {
	out := make([]Anchor, len(r.anchors))
	copy(out, r.anchors)
	return out
}
