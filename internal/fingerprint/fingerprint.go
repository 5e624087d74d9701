// Package fingerprint hashes JSON values independently of formatting and member order.
package fingerprint

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/mcncl/jsoncore/internal/serializer"
	"github.com/mcncl/jsoncore/internal/value"
)

var canonical = serializer.New(serializer.WithSortedKeys())

// Sum64 returns the xxhash64 of the sorted compact serialization of v.
func Sum64(v value.Value) uint64 {
	return xxhash.Sum64(canonical.Append(nil, v))
}

// String returns Sum64 as 16 lowercase hex digits.
func String(v value.Value) string {
	return fmt.Sprintf("%016x", Sum64(v))
}
