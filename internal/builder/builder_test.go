package builder

import (
	stderrors "errors"
	"testing"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
		want  value.Value
	}{
		{name: "null", build: func(b *Builder) { b.SetNull() }, want: value.Null()},
		{name: "bool", build: func(b *Builder) { b.SetBool(true) }, want: value.Bool(true)},
		{name: "integer", build: func(b *Builder) { b.SetInteger(42) }, want: value.Int(42)},
		{name: "float", build: func(b *Builder) { b.SetFloat(0.5) }, want: value.Float(0.5)},
		{name: "string", build: func(b *Builder) { b.SetString("tom") }, want: value.String("tom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v value.Value
			tt.build(New(&v, 10))
			assert.True(t, tt.want.Equal(v), "got kind %s", v.Kind())
		})
	}
}

func TestBuilder_Array(t *testing.T) {
	var v value.Value
	b := New(&v, 10)

	require.NoError(t, b.EnterArray())
	b.AppendArrayItem().SetFloat(1.0)
	b.AppendArrayItem().SetBool(true)
	b.AppendArrayItem().SetNull()
	b.LeaveArray()

	want := value.Array(value.Float(1.0), value.Bool(true), value.Null())
	assert.True(t, want.Equal(v))
	assert.Equal(t, 10, b.Depth())
}

func TestBuilder_ObjectLastWriteWins(t *testing.T) {
	var v value.Value
	b := New(&v, 10)

	require.NoError(t, b.EnterObject())
	b.ObjectItemSlot("a").SetInteger(1)
	b.ObjectItemSlot("b").SetString("x")
	b.ObjectItemSlot("a").SetInteger(2)
	b.LeaveObject()

	obj, err := v.Object()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.True(t, a.Equal(value.Int(2)))
}

func TestBuilder_NestedSharesDepth(t *testing.T) {
	var v value.Value
	b := New(&v, 2)

	require.NoError(t, b.EnterArray())
	child := b.AppendArrayItem()
	require.NoError(t, child.EnterObject())
	assert.Equal(t, 0, b.Depth())

	grandchild := child.ObjectItemSlot("deep")
	err := grandchild.EnterArray()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMaxDepth))

	child.LeaveObject()
	b.LeaveArray()
	assert.Equal(t, 2, b.Depth())
}

func TestBuilder_ZeroDepth(t *testing.T) {
	var v value.Value
	b := New(&v, 0)

	assert.ErrorIs(t, b.EnterArray(), errors.ErrMaxDepth)
	assert.ErrorIs(t, b.EnterObject(), errors.ErrMaxDepth)
	assert.True(t, v.IsNull(), "failed enter leaves the slot untouched")

	b = New(&v, -3)
	assert.Equal(t, 0, b.Depth())
}
