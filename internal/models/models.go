package models

// Kind identifies which JSON type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. Objects keep their members in the order
// they appeared in the input.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  string // canonical literal for KindNumber
	Str     string
	Items   []*Value
	Members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Null returns a null value
func Null() *Value { return &Value{Kind: KindNull} }

// Bool returns a boolean value
func Bool(b bool) *Value { return &Value{Kind: KindBoolean, Bool: b} }

// Number returns a number value holding the given literal
func Number(literal string) *Value { return &Value{Kind: KindNumber, Number: literal} }

// String returns a string value
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Array returns an array value
func Array(items ...*Value) *Value { return &Value{Kind: KindArray, Items: items} }

// Object returns an object value with members in the given order
func Object(members ...Member) *Value { return &Value{Kind: KindObject, Members: members} }

// IsComposite reports whether the value is an object or an array.
func (v *Value) IsComposite() bool {
	return v != nil && (v.Kind == KindObject || v.Kind == KindArray)
}

// Len returns the number of children of a composite value, 0 otherwise.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.Kind {
	case KindObject:
		return len(v.Members)
	case KindArray:
		return len(v.Items)
	default:
		return 0
	}
}

// Get returns the value of the named member of an object.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Equal reports whether two values are structurally equal, including the
// order of object members.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Number == b.Number
	case KindString:
		return a.Str == b.Str
	case KindArray:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for i := range a.Members {
			if a.Members[i].Key != b.Members[i].Key || !Equal(a.Members[i].Value, b.Members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
