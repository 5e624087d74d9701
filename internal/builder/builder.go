// Package builder turns grammar events into a value.Value tree.
package builder

import (
	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/value"
)

// Builder fills a single value slot. Builders created for array elements and object
// members share the depth budget of their parent.
type Builder struct {
	slot  *value.Value
	depth *int
}

// New returns a Builder writing into slot with maxDepth levels of array/object nesting.
func New(slot *value.Value, maxDepth int) *Builder {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Builder{slot: slot, depth: &maxDepth}
}

// Depth returns the remaining nesting budget.
func (b *Builder) Depth() int {
	return *b.depth
}

func (b *Builder) SetNull() {
	*b.slot = value.Null()
}

func (b *Builder) SetBool(v bool) {
	*b.slot = value.Bool(v)
}

func (b *Builder) SetInteger(v int64) {
	*b.slot = value.Int(v)
}

func (b *Builder) SetFloat(v float64) {
	*b.slot = value.Float(v)
}

func (b *Builder) SetString(v string) {
	*b.slot = value.String(v)
}

func (b *Builder) enter() error {
	if *b.depth == 0 {
		return errors.ErrMaxDepth
	}
	*b.depth--
	return nil
}

func (b *Builder) leave() {
	*b.depth++
}

// EnterArray turns the slot into an empty array and takes one level of depth.
func (b *Builder) EnterArray() error {
	if err := b.enter(); err != nil {
		return err
	}
	*b.slot = value.Array()
	return nil
}

// LeaveArray returns the depth taken by EnterArray.
func (b *Builder) LeaveArray() {
	b.leave()
}

// AppendArrayItem appends a null element and returns a Builder for it. It must only
// be called between EnterArray and LeaveArray.
func (b *Builder) AppendArrayItem() *Builder {
	return &Builder{slot: b.slot.AppendSlot(), depth: b.depth}
}

// EnterObject turns the slot into an empty object and takes one level of depth.
func (b *Builder) EnterObject() error {
	if err := b.enter(); err != nil {
		return err
	}
	*b.slot = value.FromObject(value.NewObject())
	return nil
}

// LeaveObject returns the depth taken by EnterObject.
func (b *Builder) LeaveObject() {
	b.leave()
}

// ObjectItemSlot returns a Builder for the member named key. A repeated key is reset
// to null so the later value replaces the earlier one.
func (b *Builder) ObjectItemSlot(key string) *Builder {
	obj, err := b.slot.Object()
	if err != nil {
		panic("builder: ObjectItemSlot outside of an object")
	}
	slot := obj.Slot(key)
	*slot = value.Null()
	return &Builder{slot: slot, depth: b.depth}
}
