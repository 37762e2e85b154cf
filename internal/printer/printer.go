// Package printer writes a rendered document to a plain stream, with ANSI
// colors when the destination supports them.
package printer

import (
	"bufio"
	"io"
	"strings"

	"github.com/amterp/color"

	"github.com/mcncl/jsonbeautifier/internal/render"
)

// Palette holds the color of every span kind.
type Palette struct {
	Key         *color.Color
	String      *color.Color
	Number      *color.Color
	Boolean     *color.Color
	Null        *color.Color
	Punct       *color.Color
	Summary     *color.Color
	Match       *color.Color
	ActiveMatch *color.Color
}

// DefaultPalette mirrors the syntax colors of the interactive view using the
// basic ANSI set.
func DefaultPalette() Palette {
	return Palette{
		Key:         color.New(color.FgHiBlue),
		String:      color.New(color.FgHiGreen),
		Number:      color.New(color.FgHiMagenta),
		Boolean:     color.New(color.FgHiYellow),
		Null:        color.New(color.FgHiBlack),
		Punct:       color.New(color.FgHiBlack),
		Summary:     color.New(color.FgHiBlack, color.Italic),
		Match:       color.New(color.FgBlack, color.BgHiYellow),
		ActiveMatch: color.New(color.FgBlack, color.BgYellow, color.Bold),
	}
}

// Options configures a Printer.
type Options struct {
	// Color forces ANSI colors on or off regardless of the terminal.
	Color bool
	// Indent replaces the two-space indentation of the view.
	Indent  string
	Palette *Palette
}

// Printer writes views to w.
type Printer struct {
	w       io.Writer
	indent  string
	palette Palette
}

// New returns a printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	palette := DefaultPalette()
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	for _, c := range palette.all() {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Printer{w: w, indent: opts.Indent, palette: palette}
}

func (p Palette) all() []*color.Color {
	return []*color.Color{p.Key, p.String, p.Number, p.Boolean, p.Null, p.Punct, p.Summary, p.Match, p.ActiveMatch}
}

// PrintView writes every line of v. Collapse glyphs are dropped so a fully
// expanded view prints as standard indented JSON.
func (p *Printer) PrintView(v *render.View) error {
	bw := bufio.NewWriter(p.w)
	for _, l := range v.Lines {
		if _, err := bw.WriteString(p.line(l)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// PrintText writes s followed by a newline.
func (p *Printer) PrintText(s string) error {
	_, err := io.WriteString(p.w, s+"\n")
	return err
}

func (p *Printer) line(l render.Line) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(p.indent, l.Depth))
	for i, s := range l.Spans {
		if i == 0 && s.Kind == render.SpanText {
			continue // indentation, rebuilt above
		}
		if s.Kind == render.SpanToggle {
			continue
		}
		c := p.colorFor(s)
		if c == nil {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(c.Sprint(s.Text))
	}
	return b.String()
}

func (p *Printer) colorFor(s render.Span) *color.Color {
	if s.IsMatch() {
		if s.Active {
			return p.palette.ActiveMatch
		}
		return p.palette.Match
	}
	switch s.Kind {
	case render.SpanKey:
		return p.palette.Key
	case render.SpanString:
		return p.palette.String
	case render.SpanNumber:
		return p.palette.Number
	case render.SpanBoolean:
		return p.palette.Boolean
	case render.SpanNull:
		return p.palette.Null
	case render.SpanPunct:
		return p.palette.Punct
	case render.SpanSummary:
		return p.palette.Summary
	default:
		return nil
	}
}
