// Package value defines the JSON document model: a closed tagged union of
// null, boolean, integer, float, string, array and object.
package value

import (
	"fmt"

	"github.com/mcncl/jsoncore/internal/errors"
)

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns the JSON-facing name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single JSON value. The zero Value is null.
//
// Arrays and objects own their children. Assigning a Value shares those children;
// use Clone for an independent copy and Take to move a value out of a slot.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// String returns a string value. s is expected to hold UTF-8.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array holding items. The slice is owned by the result.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// FromObject wraps o in a Value. A nil o yields an empty object.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// ObjectOf builds an object value from members; a repeated key keeps the last value.
func ObjectOf(members ...Member) Value {
	o := NewObject()
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return FromObject(o)
}

// Kind returns the active variant.
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsBool() bool    { return v.kind == KindBool }
func (v Value) IsInteger() bool { return v.kind == KindInteger }
func (v Value) IsFloat() bool   { return v.kind == KindFloat }
func (v Value) IsString() bool  { return v.kind == KindString }
func (v Value) IsArray() bool   { return v.kind == KindArray }
func (v Value) IsObject() bool  { return v.kind == KindObject }

// IsNumber reports whether v is an integer or a float.
func (v Value) IsNumber() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: want %s, have %s", errors.ErrTypeMismatch, want, v.kind)
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// Int returns the integer payload.
func (v Value) Int() (int64, error) {
	if v.kind != KindInteger {
		return 0, v.mismatch(KindInteger)
	}
	return v.i, nil
}

// Float returns the float payload. Integers are widened to float64, which may lose
// precision above 2^53.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInteger:
		return float64(v.i), nil
	default:
		return 0, v.mismatch(KindFloat)
	}
}

// Str returns the string payload.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// Array returns the elements of an array. The slice is shared with v.
func (v Value) Array() ([]Value, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.arr, nil
}

// Object returns the members of an object. The Object is shared with v.
func (v Value) Object() (*Object, error) {
	if v.kind != KindObject {
		return nil, v.mismatch(KindObject)
	}
	return v.obj, nil
}

// Len returns the number of elements or members, the byte length of a string, and 0
// for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// AppendSlot appends a null element to an array and returns a pointer to it. The
// pointer is valid until the next append. It panics if v is not an array.
func (v *Value) AppendSlot() *Value {
	if v.kind != KindArray {
		panic("value: AppendSlot on " + v.kind.String())
	}
	v.arr = append(v.arr, Value{})
	return &v.arr[len(v.arr)-1]
}

// Take moves the value out of v and leaves v null.
func (v *Value) Take() Value {
	out := *v
	*v = Value{}
	return out
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i := range v.arr {
			items[i] = v.arr[i].Clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports deep equality. Integers and floats never compare equal to each
// other; object member order is ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	default:
		return false
	}
}
