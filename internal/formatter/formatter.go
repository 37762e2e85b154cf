package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/mcncl/jsonbeautifier/internal/models"
)

// DefaultIndent is the indentation unit used for formatted output
const DefaultIndent = "  "

// Formatter is responsible for serializing parsed values back into JSON text
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter using two-space indentation
func NewFormatter() *Formatter {
	return &Formatter{indent: DefaultIndent}
}

// NewFormatterWithIndent creates a Formatter with a custom indentation unit.
// An empty indent produces single-line output.
func NewFormatterWithIndent(indent string) *Formatter {
	return &Formatter{indent: indent}
}

// Format serializes v with one member or element per line, ": " after keys
// and ",\n" between siblings. Empty containers are written as {} and [].
// A nil value formats to the empty string.
func (f *Formatter) Format(v *models.Value) string {
	if v == nil {
		return ""
	}
	var b strings.Builder
	f.write(&b, v, 0)
	return b.String()
}

// Compact serializes v without any insignificant whitespace
func (f *Formatter) Compact(v *models.Value) string {
	if v == nil {
		return ""
	}
	return string(pretty.Ugly([]byte(f.Format(v))))
}

func (f *Formatter) write(b *strings.Builder, v *models.Value, depth int) {
	switch v.Kind {
	case models.KindObject:
		if len(v.Members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			f.newline(b, depth+1)
			b.WriteString(QuoteString(m.Key))
			b.WriteByte(':')
			if f.indent != "" {
				b.WriteByte(' ')
			}
			f.write(b, m.Value, depth+1)
		}
		f.newline(b, depth)
		b.WriteByte('}')
	case models.KindArray:
		if len(v.Items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			f.newline(b, depth+1)
			f.write(b, item, depth+1)
		}
		f.newline(b, depth)
		b.WriteByte(']')
	default:
		b.WriteString(Literal(v))
	}
}

func (f *Formatter) newline(b *strings.Builder, depth int) {
	if f.indent == "" {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString(f.indent)
	}
}

// Literal returns the JSON text of a primitive value. Composite values
// return the empty string.
func Literal(v *models.Value) string {
	switch v.Kind {
	case models.KindNull:
		return "null"
	case models.KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case models.KindNumber:
		return v.Number
	case models.KindString:
		return QuoteString(v.Str)
	default:
		return ""
	}
}

// QuoteString quotes s as a JSON string. HTML characters are left alone and
// U+2028/U+2029 are written raw, matching what browsers produce.
func QuoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	start := 0
	for i, r := range s {
		if r == '\u2028' || r == '\u2029' {
			b.WriteString(escapeFragment(s[start:i]))
			b.WriteRune(r)
			start = i + len(string(r))
		}
	}
	b.WriteString(escapeFragment(s[start:]))
	b.WriteByte('"')
	return b.String()
}

// escapeFragment returns the escaped body of s without surrounding quotes.
func escapeFragment(s string) string {
	if s == "" {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return s
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return string(out[1 : len(out)-1])
}
