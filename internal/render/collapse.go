package render

import "github.com/mcncl/jsonbeautifier/internal/models"

// CollapseState holds the expand/collapse flag of every composite node,
// keyed by path. Nodes not present are expanded.
type CollapseState struct {
	collapsed map[Path]bool
}

// NewCollapseState returns a state with every node expanded.
func NewCollapseState() *CollapseState {
	return &CollapseState{collapsed: make(map[Path]bool)}
}

// IsCollapsed reports whether the node at p is collapsed.
func (c *CollapseState) IsCollapsed(p Path) bool {
	return c.collapsed[p]
}

// Toggle flips the node at p and returns its new collapsed state. Only that
// node is affected.
func (c *CollapseState) Toggle(p Path) bool {
	c.Set(p, !c.collapsed[p])
	return c.collapsed[p]
}

// Set collapses or expands the node at p.
func (c *CollapseState) Set(p Path, collapsed bool) {
	if collapsed {
		c.collapsed[p] = true
		return
	}
	delete(c.collapsed, p)
}

// ExpandAll expands every node.
func (c *CollapseState) ExpandAll() {
	c.collapsed = make(map[Path]bool)
}

// CollapseAll collapses every composite node of root except root itself.
func (c *CollapseState) CollapseAll(root *models.Value) {
	c.CollapseFrom(root, 1)
}

// CollapseFrom collapses every composite node at depth >= depth. A depth
// of 0 or less leaves the state untouched.
func (c *CollapseState) CollapseFrom(root *models.Value, depth int) {
	if depth <= 0 {
		return
	}
	walkComposites(root, Root, 0, func(p Path, d int) {
		if d >= depth {
			c.collapsed[p] = true
		}
	})
}

// Prune drops the state of paths that no longer name a non-empty container
// of root. Call it after a reparse so vanished nodes do not leave stale flags.
func (c *CollapseState) Prune(root *models.Value) {
	if len(c.collapsed) == 0 {
		return
	}
	live := make(map[Path]bool)
	walkComposites(root, Root, 0, func(p Path, _ int) {
		live[p] = true
	})
	for p := range c.collapsed {
		if !live[p] {
			delete(c.collapsed, p)
		}
	}
}

// Len returns the number of collapsed nodes.
func (c *CollapseState) Len() int {
	return len(c.collapsed)
}

// walkComposites calls fn for every non-empty container under v.
func walkComposites(v *models.Value, p Path, depth int, fn func(Path, int)) {
	if !v.IsComposite() || v.Len() == 0 {
		return
	}
	fn(p, depth)
	switch v.Kind {
	case models.KindObject:
		for _, m := range v.Members {
			walkComposites(m.Value, p.Key(m.Key), depth+1, fn)
		}
	case models.KindArray:
		for i, item := range v.Items {
			walkComposites(item, p.Index(i), depth+1, fn)
		}
	}
}
