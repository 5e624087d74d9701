package formatter

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsoncore/internal/config"
	"github.com/mcncl/jsoncore/internal/serializer"
	"github.com/mcncl/jsoncore/internal/value"
)

// Formatter renders parsed documents according to the output settings
type Formatter struct {
	keyCase    func(string) string
	serializer *serializer.Serializer
}

// New creates a Formatter from the output configuration
func New(cfg config.OutputConfig) (*Formatter, error) {
	keyCase, err := KeyCaseFunc(cfg.KeyCase)
	if err != nil {
		return nil, err
	}

	var opts []serializer.Option
	if cfg.SortKeys {
		opts = append(opts, serializer.WithSortedKeys())
	}

	return &Formatter{
		keyCase:    keyCase,
		serializer: serializer.New(opts...),
	}, nil
}

// KeyCaseFunc returns the key conversion for a configured case name.
// The empty name leaves keys untouched and returns nil.
func KeyCaseFunc(name string) (func(string) string, error) {
	switch name {
	case "":
		return nil, nil
	case "snake":
		return strcase.ToSnake, nil
	case "kebab":
		return strcase.ToKebab, nil
	case "camel":
		return strcase.ToCamel, nil
	case "lower_camel":
		return strcase.ToLowerCamel, nil
	default:
		return nil, fmt.Errorf("unknown key case '%s'", name)
	}
}

// Format serializes v, rewriting object keys first when a key case is set
func (f *Formatter) Format(v value.Value) (string, error) {
	if f.keyCase != nil {
		v = RewriteKeys(v, f.keyCase)
	}
	return f.serializer.Serialize(v), nil
}

// RewriteKeys returns a copy of v with every object key passed through fn.
// Keys that collide after conversion keep the first position and the last value.
func RewriteKeys(v value.Value, fn func(string) string) value.Value {
	switch v.Kind() {
	case value.KindArray:
		items, _ := v.Array()
		out := make([]value.Value, len(items))
		for i, item := range items {
			out[i] = RewriteKeys(item, fn)
		}
		return value.Array(out...)

	case value.KindObject:
		obj, _ := v.Object()
		out := value.NewObject()
		for _, m := range obj.Members() {
			out.Set(fn(m.Key), RewriteKeys(m.Value, fn))
		}
		return value.FromObject(out)

	default:
		return v
	}
}
