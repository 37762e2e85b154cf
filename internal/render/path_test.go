package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name     string
		path     Path
		expected string
	}{
		{"root", Root, ""},
		{"key", Root.Key("user"), "/user"},
		{"index", Root.Key("items").Index(2), "/items/2"},
		{"slash escaped", Root.Key("a/b"), "/a~1b"},
		{"tilde escaped", Root.Key("m~n"), "/m~0n"},
		{"tilde then one", Root.Key("~1"), "/~01"},
		{"empty key", Root.Key(""), "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.path))
		})
	}
}

func TestPath_KeyAndIndexAreDistinct(t *testing.T) {
	// An object key "0" and array index 0 share a pointer, but they can never
	// occur under the same parent.
	assert.Equal(t, Root.Key("0"), Root.Index(0))
	assert.NotEqual(t, Root.Key("a").Index(0), Root.Key("a").Key("1"))
}
