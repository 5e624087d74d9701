package value

// Member is a key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object. Keys are unique; members keep the position of the first
// insertion of their key.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// Set stores v under key, replacing any previous value.
func (o *Object) Set(key string, v Value) {
	*o.Slot(key) = v
}

// Slot returns a pointer to the value stored under key, adding a null member if the
// key is new. The pointer is valid until the next member is added.
func (o *Object) Slot(key string) *Value {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		return &o.members[i].Value
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key})
	return &o.members[len(o.members)-1].Value
}

// Keys returns the keys in member order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	if o == nil {
		return keys
	}
	for _, m := range o.members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Members returns the members in order. The slice is shared with o and must not be
// modified.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	out := &Object{
		members: make([]Member, o.Len()),
		index:   make(map[string]int, o.Len()),
	}
	if o == nil {
		return out
	}
	for i, m := range o.members {
		out.members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		out.index[m.Key] = i
	}
	return out
}

// Equal reports whether both objects hold the same keys with equal values.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, m := range o.Members() {
		ov, ok := other.Get(m.Key)
		if !ok || !m.Value.Equal(ov) {
			return false
		}
	}
	return true
}
