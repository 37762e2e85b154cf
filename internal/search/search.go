// Package search tracks the search term and the active match, and moves the
// output into view when the active match changes.
package search

import (
	"fmt"

	"github.com/mcncl/jsonbeautifier/internal/render"
)

// Scroller brings an anchor into view.
type Scroller interface {
	ScrollTo(a render.Anchor)
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func(a render.Anchor)

// ScrollTo calls f(a).
func (f ScrollerFunc) ScrollTo(a render.Anchor) { f(a) }

// State is a snapshot of the search.
type State struct {
	Term   string
	Total  int
	Active int
}

// Counter returns the "A / T" display text, or "0 / 0" with no matches.
func (s State) Counter() string {
	if s.Total == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.Active+1, s.Total)
}

// CanNavigate reports whether next/previous should be enabled.
func (s State) CanNavigate() bool {
	return s.Total > 0
}

// Coordinator owns the search term, the match total of the last render pass
// and the active match index.
type Coordinator struct {
	term     string
	total    int
	active   int
	scroller Scroller
}

// NewCoordinator returns a coordinator that scrolls through s. s may be nil.
func NewCoordinator(s Scroller) *Coordinator {
	return &Coordinator{scroller: s}
}

// SetScroller replaces the scroll target.
func (c *Coordinator) SetScroller(s Scroller) {
	c.scroller = s
}

// SetTerm updates the term and makes the first match active. It reports
// whether the term changed.
func (c *Coordinator) SetTerm(term string) bool {
	if term == c.term {
		return false
	}
	c.term = term
	c.active = 0
	return true
}

// Term returns the current term.
func (c *Coordinator) Term() string {
	return c.term
}

// Active returns the active match index.
func (c *Coordinator) Active() int {
	return c.active
}

// Total returns the match count of the last synced pass.
func (c *Coordinator) Total() int {
	return c.total
}

// Next makes the following match active, wrapping to the first. It is a
// no-op without matches.
func (c *Coordinator) Next() bool {
	if c.total == 0 {
		return false
	}
	c.active = (c.active + 1) % c.total
	return true
}

// Prev makes the preceding match active, wrapping to the last. It is a
// no-op without matches.
func (c *Coordinator) Prev() bool {
	if c.total == 0 {
		return false
	}
	c.active = (c.active - 1 + c.total) % c.total
	return true
}

// Sync reads the match total from a freshly populated registry. When the
// total differs from the previous pass the active match goes back to the
// first one. It reports whether the active index changed, in which case the
// pass must be redrawn so the right span carries the active styling.
func (c *Coordinator) Sync(reg *render.Registry) bool {
	total := reg.Len()
	before := c.active
	if total != c.total {
		c.active = 0
	}
	c.total = total
	if c.total == 0 {
		c.active = 0
	}
	return c.active != before
}

// ScrollToActive asks the scroller to show the active match. Nothing happens
// when there is no scroller or the registry has no anchor for it.
func (c *Coordinator) ScrollToActive(reg *render.Registry) {
	if c.scroller == nil || c.total == 0 {
		return
	}
	a, ok := reg.Lookup(c.active)
	if !ok {
		return
	}
	c.scroller.ScrollTo(a)
}

// ResetActive makes the first match active without touching the term. It
// reports whether the active match changed.
func (c *Coordinator) ResetActive() bool {
	changed := c.active != 0
	c.active = 0
	return changed
}

// Reset clears the term and every count.
func (c *Coordinator) Reset() {
	c.term = ""
	c.total = 0
	c.active = 0
}

// State returns a snapshot.
func (c *Coordinator) State() State {
	return State{Term: c.term, Total: c.total, Active: c.active}
}
