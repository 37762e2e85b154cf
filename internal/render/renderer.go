// Package render turns a parsed JSON value into styled lines. A render pass
// walks the tree depth-first, honours per-node collapse state, highlights
// search occurrences and records where each occurrence was drawn.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mcncl/jsonbeautifier/internal/formatter"
	"github.com/mcncl/jsonbeautifier/internal/models"
)

const (
	indentUnit    = "  "
	glyphExpanded = "▾ "
	glyphCollapse = "▸ "
)

// Options carries the search state a pass needs.
type Options struct {
	// Term is matched case-insensitively; empty disables highlighting.
	Term string
	// Active is the match ID drawn with active styling.
	Active int
}

// Renderer renders value trees using a shared collapse state.
type Renderer struct {
	collapse *CollapseState
}

// NewRenderer returns a renderer reading collapse flags from collapse. A
// nil state renders everything expanded.
func NewRenderer(collapse *CollapseState) *Renderer {
	if collapse == nil {
		collapse = NewCollapseState()
	}
	return &Renderer{collapse: collapse}
}

// Render performs one pass over root. reg is reset first and then receives
// one anchor per highlighted occurrence, with IDs in reading order. A nil
// root renders the placeholder line.
func (r *Renderer) Render(root *models.Value, opts Options, reg *Registry) *View {
	reg.Reset()

	if root == nil {
		return &View{
			Placeholder: true,
			Lines: []Line{{
				Spans: []Span{{Text: PlaceholderText, Kind: SpanPlaceholder, Match: NoMatch}},
			}},
		}
	}

	p := &pass{
		collapse: r.collapse,
		reg:      reg,
		active:   opts.Active,
		matcher:  termMatcher(opts.Term),
	}
	p.node(nil, root, 0, Root, true)
	return &View{Lines: p.lines}
}

// termMatcher compiles a case-insensitive literal matcher for term.
func termMatcher(term string) *regexp.Regexp {
	if term == "" {
		return nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
}

// pass is the cursor of a single render: it owns the lines being built and
// the running display column, and is discarded when the pass ends.
type pass struct {
	collapse *CollapseState
	reg      *Registry
	matcher  *regexp.Regexp
	active   int

	lines []Line
	line  Line
	col   int
}

func (p *pass) startLine(depth int, path Path) {
	p.line = Line{Depth: depth, Path: path}
	p.col = 0
	if depth > 0 {
		p.emit(strings.Repeat(indentUnit, depth), SpanText)
	}
}

func (p *pass) endLine() {
	p.lines = append(p.lines, p.line)
	p.line = Line{}
}

// emit appends text that is never searched.
func (p *pass) emit(text string, kind SpanKind) {
	if text == "" {
		return
	}
	p.line.Spans = append(p.line.Spans, Span{Text: text, Kind: kind, Match: NoMatch})
	p.col += runewidth.StringWidth(text)
}

// emitSearchable appends text, splitting out every occurrence of the term.
// Each occurrence takes the next match ID and registers its anchor before
// the following one is scanned.
func (p *pass) emitSearchable(text string, kind SpanKind) {
	if p.matcher == nil {
		p.emit(text, kind)
		return
	}
	last := 0
	for _, loc := range p.matcher.FindAllStringIndex(text, -1) {
		p.emit(text[last:loc[0]], kind)
		matched := text[loc[0]:loc[1]]
		width := runewidth.StringWidth(matched)
		id := p.reg.Register(Anchor{Line: len(p.lines), Column: p.col, Width: width})
		p.line.Spans = append(p.line.Spans, Span{Text: matched, Kind: kind, Match: id, Active: id == p.active})
		p.col += width
		last = loc[1]
	}
	p.emit(text[last:], kind)
}

func (p *pass) keyPrefix(key *string) {
	if key == nil {
		return
	}
	p.emitSearchable(formatter.QuoteString(*key), SpanKey)
	p.emit(": ", SpanPunct)
}

func comma(isLast bool) string {
	if isLast {
		return ""
	}
	return ","
}

// node renders v and, unless it is collapsed, its descendants. key is nil
// for the root and for array elements.
func (p *pass) node(key *string, v *models.Value, depth int, path Path, isLast bool) {
	p.startLine(depth, path)
	p.keyPrefix(key)

	if !v.IsComposite() {
		p.emitSearchable(formatter.Literal(v), primitiveKind(v))
		p.emit(comma(isLast), SpanPunct)
		p.endLine()
		return
	}

	opener, closer := "[", "]"
	if v.Kind == models.KindObject {
		opener, closer = "{", "}"
	}

	// An empty container has nothing to hide, so it is drawn inline
	// without a toggle.
	if v.Len() == 0 {
		p.emit(opener+closer+comma(isLast), SpanPunct)
		p.endLine()
		return
	}

	collapsed := p.collapse.IsCollapsed(path)
	p.line.Toggle = true
	p.line.Collapsed = collapsed
	if collapsed {
		p.emit(glyphCollapse, SpanToggle)
		p.emit(opener, SpanPunct)
		p.emit(fmt.Sprintf(" ... %d items ... ", v.Len()), SpanSummary)
		p.emit(closer+comma(isLast), SpanPunct)
		p.endLine()
		return
	}

	p.emit(glyphExpanded, SpanToggle)
	p.emit(opener, SpanPunct)
	p.endLine()

	switch v.Kind {
	case models.KindObject:
		for i := range v.Members {
			m := &v.Members[i]
			p.node(&m.Key, m.Value, depth+1, path.Key(m.Key), i == len(v.Members)-1)
		}
	case models.KindArray:
		for i, item := range v.Items {
			p.node(nil, item, depth+1, path.Index(i), i == len(v.Items)-1)
		}
	}

	p.startLine(depth, path)
	p.emit(closer+comma(isLast), SpanPunct)
	p.endLine()
}

func primitiveKind(v *models.Value) SpanKind {
	switch v.Kind {
	case models.KindString:
		return SpanString
	case models.KindNumber:
		return SpanNumber
	case models.KindBoolean:
		return SpanBoolean
	default:
		return SpanNull
	}
}
