package e2e_test

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonbeautifier/internal/logging"
	"github.com/mcncl/jsonbeautifier/internal/printer"
	"github.com/mcncl/jsonbeautifier/internal/session"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"count":      width,
			"enabled":    depth%2 == 0,
			"missing":    nil,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"value": i * 10,
			}
		}
	}
	return result
}

func marshal(b *testing.B, v interface{}) string {
	b.Helper()
	data, err := json.Marshal(v)
	require.NoError(b, err)
	return string(data)
}

func newBenchSession() *session.Session {
	return session.New(session.Options{Logger: logging.Discard()})
}

// BenchmarkDeepNesting measures a full reprocess of nested documents
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			input := marshal(b, generateNestedJSON(depth.depth, depth.width))
			sess := newBenchSession()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// Alternate so every iteration reprocesses.
				sess.SetInput("")
				sess.SetInput(input)
			}
		})
	}
}

// BenchmarkWideStructures measures search over objects with many fields
func BenchmarkWideStructures(b *testing.B) {
	sizes := []int{100, 1000, 5000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dFields", size), func(b *testing.B) {
			sess := newBenchSession()
			sess.SetInput(marshal(b, generateWideJSON(size)))

			terms := []string{"field", "value_1", "object"}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sess.SetSearchTerm(terms[i%len(terms)])
				sess.NextMatch()
			}
		})
	}
}

// BenchmarkCollapseToggling measures re-rendering after collapse changes
func BenchmarkCollapseToggling(b *testing.B) {
	sess := newBenchSession()
	sess.SetInput(marshal(b, generateNestedJSON(4, 4)))
	sess.SetSearchTerm("data")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sess.CollapseAll()
		sess.ExpandAll()
	}
}

// BenchmarkPrint measures print mode output
func BenchmarkPrint(b *testing.B) {
	sess := newBenchSession()
	sess.SetInput(marshal(b, generateWideJSON(2000)))
	p := printer.New(io.Discard, printer.Options{Color: true})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.PrintView(sess.View()); err != nil {
			b.Fatal(err)
		}
	}
}
