// Package theme defines the accent palettes of the interface and the styles
// derived from them.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iancoleman/strcase"

	"github.com/mcncl/jsonbeautifier/internal/render"
)

// ID names a theme. IDs are what gets persisted.
type ID string

const (
	Blue   ID = "blue"
	Green  ID = "green"
	Yellow ID = "yellow"
	Red    ID = "red"
	White  ID = "white"
)

// Default is used when nothing valid is configured or persisted.
const Default = Blue

// --- Tailwind palette ---
const (
	sky300 = "#7dd3fc"
	sky400 = "#38bdf8"
	sky600 = "#0284c7"
	sky800 = "#075985"

	emerald300 = "#6ee7b7"
	emerald400 = "#34d399"
	emerald600 = "#059669"
	emerald800 = "#065f46"

	amber300 = "#fcd34d"
	amber400 = "#fbbf24"
	amber500 = "#f59e0b"
	amber700 = "#b45309"

	rose300 = "#fda4af"
	rose400 = "#fb7185"
	rose600 = "#e11d48"
	rose800 = "#9f1239"

	slate100 = "#f1f5f9"
	slate200 = "#e2e8f0"
	slate300 = "#cbd5e1"
	slate400 = "#94a3b8"
	slate500 = "#64748b"
	slate600 = "#475569"
	slate700 = "#334155"
	slate800 = "#1e293b"

	fuchsia400 = "#e879f9"
	yellow300  = "#fde047"
	orange500  = "#f97316"
)

// Accent is the per-theme part of the palette.
type Accent struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Icon    lipgloss.Color
	Border  lipgloss.Color
	// OnPrimary is the text color drawn on Primary.
	OnPrimary lipgloss.Color
}

var accents = map[ID]Accent{
	Blue:   {Name: "Sky Blue", Primary: sky600, Text: sky400, Icon: sky300, Border: sky800, OnPrimary: "#ffffff"},
	Green:  {Name: "Emerald Green", Primary: emerald600, Text: emerald400, Icon: emerald300, Border: emerald800, OnPrimary: "#ffffff"},
	Yellow: {Name: "Amber Yellow", Primary: amber500, Text: amber400, Icon: amber300, Border: amber700, OnPrimary: "#ffffff"},
	Red:    {Name: "Rose Red", Primary: rose600, Text: rose400, Icon: rose300, Border: rose800, OnPrimary: "#ffffff"},
	White:  {Name: "Cool White", Primary: slate200, Text: slate100, Icon: slate300, Border: slate600, OnPrimary: slate800},
}

var order = []ID{Blue, Green, Yellow, Red, White}

// IDs returns every theme in picker order.
func IDs() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}

// Valid reports whether id names a theme.
func (id ID) Valid() bool {
	_, ok := accents[id]
	return ok
}

// Name returns the display name, e.g. "Sky Blue".
func (id ID) Name() string {
	return accents[id].Name
}

// Next returns the theme after id in picker order, wrapping around.
func (id ID) Next() ID {
	for i, o := range order {
		if o == id {
			return order[(i+1)%len(order)]
		}
	}
	return Default
}

// Parse resolves a theme from its ID or display name in any common casing:
// "blue", "Sky Blue", "sky_blue" and "SkyBlue" all name the same theme.
func Parse(name string) (ID, error) {
	key := strcase.ToKebab(strings.TrimSpace(name))
	for _, id := range order {
		if key == string(id) || key == strcase.ToKebab(accents[id].Name) {
			return id, nil
		}
	}
	return Default, fmt.Errorf("unknown theme %q", name)
}

// Theme is the full set of styles for one accent.
type Theme struct {
	ID     ID
	Accent Accent

	Title         lipgloss.Style
	Header        lipgloss.Style
	Pane          lipgloss.Style
	FocusedPane   lipgloss.Style
	Label         lipgloss.Style
	Badge         lipgloss.Style
	Status        lipgloss.Style
	Error         lipgloss.Style
	Counter       lipgloss.Style
	CounterMuted  lipgloss.Style
	CursorLine    lipgloss.Style
	HelpSeparator lipgloss.Style

	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Boolean     lipgloss.Style
	Null        lipgloss.Style
	Punct       lipgloss.Style
	Toggle      lipgloss.Style
	Summary     lipgloss.Style
	Placeholder lipgloss.Style
	Match       lipgloss.Style
	ActiveMatch lipgloss.Style
}

// Get builds the theme for id, falling back to Default for unknown IDs.
func Get(id ID) Theme {
	if !id.Valid() {
		id = Default
	}
	a := accents[id]
	border := lipgloss.RoundedBorder()

	return Theme{
		ID:     id,
		Accent: a,

		Title:         lipgloss.NewStyle().Bold(true).Foreground(a.Text),
		Header:        lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(a.Border),
		Pane:          lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(slate700)),
		FocusedPane:   lipgloss.NewStyle().Border(border).BorderForeground(a.Primary),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color(slate400)),
		Badge:         lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(a.OnPrimary).Background(a.Primary),
		Status:        lipgloss.NewStyle().Foreground(a.Icon),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color(rose400)),
		Counter:       lipgloss.NewStyle().Foreground(lipgloss.Color(slate300)),
		CounterMuted:  lipgloss.NewStyle().Foreground(lipgloss.Color(slate600)),
		CursorLine:    lipgloss.NewStyle().Foreground(a.Primary),
		HelpSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color(slate600)),

		Key:         lipgloss.NewStyle().Foreground(lipgloss.Color(sky400)),
		String:      lipgloss.NewStyle().Foreground(lipgloss.Color(emerald400)),
		Number:      lipgloss.NewStyle().Foreground(lipgloss.Color(fuchsia400)),
		Boolean:     lipgloss.NewStyle().Foreground(lipgloss.Color(amber400)),
		Null:        lipgloss.NewStyle().Foreground(lipgloss.Color(slate400)),
		Punct:       lipgloss.NewStyle().Foreground(lipgloss.Color(slate400)),
		Toggle:      lipgloss.NewStyle().Foreground(lipgloss.Color(slate500)),
		Summary:     lipgloss.NewStyle().Foreground(lipgloss.Color(slate500)),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(slate500)).Italic(true),
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color(slate800)).Background(lipgloss.Color(yellow300)),
		ActiveMatch: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(slate800)).Background(lipgloss.Color(orange500)),
	}
}

// SpanStyle returns the style for one rendered span. Match styling replaces
// the syntax color of the occurrence.
func (t Theme) SpanStyle(s render.Span) lipgloss.Style {
	if s.IsMatch() {
		if s.Active {
			return t.ActiveMatch
		}
		return t.Match
	}
	switch s.Kind {
	case render.SpanKey:
		return t.Key
	case render.SpanString:
		return t.String
	case render.SpanNumber:
		return t.Number
	case render.SpanBoolean:
		return t.Boolean
	case render.SpanNull:
		return t.Null
	case render.SpanPunct:
		return t.Punct
	case render.SpanToggle:
		return t.Toggle
	case render.SpanSummary:
		return t.Summary
	case render.SpanPlaceholder:
		return t.Placeholder
	default:
		return lipgloss.NewStyle()
	}
}

// RenderLine styles every span of l and joins them.
func (t Theme) RenderLine(l render.Line) string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(t.SpanStyle(s).Render(s.Text))
	}
	return b.String()
}
