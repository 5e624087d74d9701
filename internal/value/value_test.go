package value

import (
	stderrors "errors"
	"testing"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.True(t, v.Equal(Null()))
}

func TestValue_Accessors(t *testing.T) {
	b, err := Bool(true).Bool()
	require.NoError(t, err)
	assert.True(t, b)

	i, err := Int(-7).Int()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), i)

	f, err := Float(0.5).Float()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	s, err := String("tom").Str()
	require.NoError(t, err)
	assert.Equal(t, "tom", s)

	items, err := Array(Int(1), Null()).Array()
	require.NoError(t, err)
	assert.Len(t, items, 2)

	obj, err := ObjectOf(Member{Key: "a", Value: Int(1)}).Object()
	require.NoError(t, err)
	assert.Equal(t, 1, obj.Len())
}

func TestValue_AccessorTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		call func() error
	}{
		{name: "bool on string", call: func() error { _, err := String("x").Bool(); return err }},
		{name: "int on float", call: func() error { _, err := Float(1).Int(); return err }},
		{name: "float on bool", call: func() error { _, err := Bool(false).Float(); return err }},
		{name: "str on null", call: func() error { _, err := Null().Str(); return err }},
		{name: "array on object", call: func() error { _, err := ObjectOf().Array(); return err }},
		{name: "object on array", call: func() error { _, err := Array().Object(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrTypeMismatch))
		})
	}
}

func TestValue_FloatWidensInteger(t *testing.T) {
	v := Int(42)

	f, err := v.Float()
	require.NoError(t, err)
	assert.Equal(t, 42.0, f)
	assert.Equal(t, KindInteger, v.Kind(), "widening does not change the stored kind")
}

func TestValue_CloneIsDeep(t *testing.T) {
	orig := ObjectOf(
		Member{Key: "list", Value: Array(Int(1), Int(2))},
		Member{Key: "inner", Value: ObjectOf(Member{Key: "x", Value: String("y")})},
	)
	cp := orig.Clone()
	require.True(t, cp.Equal(orig))

	obj, _ := cp.Object()
	list, _ := obj.Get("list")
	items, _ := list.Array()
	items[0] = String("changed")
	inner, _ := obj.Get("inner")
	innerObj, _ := inner.Object()
	innerObj.Set("x", Int(9))

	origObj, _ := orig.Object()
	origList, _ := origObj.Get("list")
	origItems, _ := origList.Array()
	assert.True(t, origItems[0].Equal(Int(1)))
	origInner, _ := origObj.Get("inner")
	x, _ := origInner.Object()
	xv, _ := x.Get("x")
	assert.True(t, xv.Equal(String("y")))
}

func TestValue_TakeLeavesNull(t *testing.T) {
	v := Array(Int(1))
	moved := v.Take()

	assert.True(t, v.IsNull())
	assert.True(t, moved.Equal(Array(Int(1))))
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "integer vs float", a: Int(1), b: Float(1), want: false},
		{name: "same floats", a: Float(99.0), b: Float(99), want: true},
		{name: "strings", a: String("a"), b: String("b"), want: false},
		{name: "array order matters", a: Array(Int(1), Int(2)), b: Array(Int(2), Int(1)), want: false},
		{name: "empty arrays", a: Array(), b: Array(), want: true},
		{
			name: "object order ignored",
			a:    ObjectOf(Member{Key: "a", Value: Int(1)}, Member{Key: "b", Value: Int(2)}),
			b:    ObjectOf(Member{Key: "b", Value: Int(2)}, Member{Key: "a", Value: Int(1)}),
			want: true,
		},
		{
			name: "object values differ",
			a:    ObjectOf(Member{Key: "a", Value: Int(1)}),
			b:    ObjectOf(Member{Key: "a", Value: Float(1)}),
			want: false,
		},
		{name: "bool vs null", a: Bool(false), b: Null(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestValue_Len(t *testing.T) {
	assert.Equal(t, 3, Array(Null(), Null(), Null()).Len())
	assert.Equal(t, 2, String("hi").Len())
	assert.Equal(t, 0, Int(10).Len())
	assert.Equal(t, 1, ObjectOf(Member{Key: "k", Value: Null()}).Len())
}

func TestValue_AppendSlot(t *testing.T) {
	v := Array()
	*v.AppendSlot() = Int(1)
	*v.AppendSlot() = String("two")

	assert.True(t, v.Equal(Array(Int(1), String("two"))))
	assert.Panics(t, func() {
		n := Null()
		n.AppendSlot()
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
