package render

import (
	"strconv"
	"strings"
)

// Path identifies a position in the value tree as a JSON Pointer (RFC 6901).
// The root is the empty path. Paths are built from object keys and array
// indices, so a node keeps its identity across re-renders as long as its
// structural position is unchanged.
type Path string

// Root is the path of the document root.
const Root Path = ""

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Key returns the path of the object member named key.
func (p Path) Key(key string) Path {
	return p + "/" + Path(pointerEscaper.Replace(key))
}

// Index returns the path of the array element at index i.
func (p Path) Index(i int) Path {
	return p + "/" + Path(strconv.Itoa(i))
}
