package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// SpanKind classifies a run of text for styling.
type SpanKind int

const (
	SpanText SpanKind = iota // indentation and other unstyled text
	SpanKey
	SpanString
	SpanNumber
	SpanBoolean
	SpanNull
	SpanPunct
	SpanToggle
	SpanSummary
	SpanPlaceholder
)

// NoMatch is the Match value of a span that is not a search occurrence.
const NoMatch = -1

// Span is a run of text on one line.
type Span struct {
	Text string
	Kind SpanKind
	// Match is the global match ID of a highlighted occurrence, or NoMatch.
	Match  int
	Active bool
}

// IsMatch reports whether the span is a highlighted search occurrence.
func (s Span) IsMatch() bool {
	return s.Match != NoMatch
}

// Line is one rendered row.
type Line struct {
	Spans []Span
	Depth int
	// Path is the node the line belongs to. For closing-bracket lines it is
	// the path of the container being closed.
	Path Path
	// Toggle is set on the line that carries the collapse control of Path.
	Toggle    bool
	Collapsed bool
}

// Text returns the plain text of the line.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the display width of the line in terminal cells.
func (l Line) Width() int {
	return runewidth.StringWidth(l.Text())
}

// PlaceholderText is shown when there is nothing to render.
const PlaceholderText = "Formatted output will appear here"

// View is the result of one render pass.
type View struct {
	Lines       []Line
	Placeholder bool
}

// Text returns the plain text of the whole view.
func (v *View) Text() string {
	if v == nil {
		return ""
	}
	rows := make([]string, len(v.Lines))
	for i, l := range v.Lines {
		rows[i] = l.Text()
	}
	return strings.Join(rows, "\n")
}

// ToggleAt returns the path whose collapse control sits on line i.
func (v *View) ToggleAt(i int) (Path, bool) {
	if v == nil || i < 0 || i >= len(v.Lines) || !v.Lines[i].Toggle {
		return "", false
	}
	return v.Lines[i].Path, true
}

// LineOf returns the index of the line carrying the toggle for p.
func (v *View) LineOf(p Path) (int, bool) {
	if v == nil {
		return 0, false
	}
	for i, l := range v.Lines {
		if l.Toggle && l.Path == p {
			return i, true
		}
	}
	return 0, false
}
