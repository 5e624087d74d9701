package input

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a compression container.
type Format int

const (
	None Format = iota
	Gzip
	Zstd
	LZ4
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Detect reports the compression format of data from its leading bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return Gzip
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// zstdDecoderPool keeps warmed-up decoders; Reset rebinds them to a new stream.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

func (f Format) decompress(data []byte, maxBytes int64) ([]byte, error) {
	src := bytes.NewReader(data)

	switch f {
	case Gzip:
		zr, err := gzip.NewReader(src)
		if err != nil {
			return nil, err
		}
		defer func() { _ = zr.Close() }()
		return readLimited(zr, maxBytes)

	case Zstd:
		decoder := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(decoder)
		if err := decoder.Reset(src); err != nil {
			return nil, err
		}
		return readLimited(decoder, maxBytes)

	case LZ4:
		return readLimited(lz4.NewReader(src), maxBytes)

	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedCompression, f)
	}
}
