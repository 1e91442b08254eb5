package feed

import "strings"

type Kind int

const (
	Absent Kind = iota
	Scalar
	Object
	List
)

// Value is the tagged variant every field decoder consumes. The same
// logical field arrives from the feed as a bare string, a tagged object
// carrying its text payload, or a sequence of either, depending on the
// schema generation that produced the row.
type Value struct {
	Kind   Kind
	Text   string
	Fields map[string]Value
	Items  []Value
}

// Field looks up a child of an object value. Tag names are upper-cased at
// parse time, so lookups are case-insensitive by construction.
func (v Value) Field(name string) Value {
	if v.Kind != Object {
		return Value{}
	}
	return v.Fields[strings.ToUpper(name)]
}

// ScalarText returns the primary textual payload: scalar text, a tagged
// object's character data, or the first usable item of a list.
func (v Value) ScalarText() string {
	switch v.Kind {
	case Scalar, Object:
		return strings.TrimSpace(v.Text)
	case List:
		for _, item := range v.Items {
			if s := item.ScalarText(); s != "" {
				return s
			}
		}
	}
	return ""
}

// ListItems flattens the sequence-vs-single ambiguity: a list yields its
// items, a scalar or object yields itself, absent yields nothing.
func (v Value) ListItems() []Value {
	switch v.Kind {
	case List:
		return v.Items
	case Scalar, Object:
		return []Value{v}
	}
	return nil
}
