// Package input loads JSON documents from files or streams into memory,
// transparently decompressing gzip, zstd and lz4 payloads.
package input

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsoncore/internal/errors"
)

// LoadFile reads the file at path, decompressing it when needed. Both the file
// and its decompressed contents are limited to maxBytes.
func LoadFile(path string, maxBytes int64) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", path),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to open file '%s'", path), err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to get file stats for '%s'", path), err)
	}
	if stat.IsDir() {
		return nil, errors.NewInputError(fmt.Sprintf("'%s' is a directory", path), errors.ErrInvalidFilePath)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", path),
			errors.ErrFileEmpty,
		)
	}
	if stat.Size() > maxBytes {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is %d bytes, limit is %d", path, stat.Size(), maxBytes),
			errors.ErrInputTooLarge,
		)
	}

	data, err := readLimited(file, maxBytes)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
	}

	data, err = Decompress(data, maxBytes)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to decompress file '%s'", path), err)
	}
	return data, nil
}

// ReadAll reads a whole stream such as stdin. Whitespace-only input is
// reported as errors.ErrEmptyInput.
func ReadAll(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := readLimited(r, maxBytes)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}

	data, err = Decompress(data, maxBytes)
	if err != nil {
		return nil, errors.NewInputError("failed to decompress input", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return data, nil
}

// readLimited reads r to the end, failing with ErrInputTooLarge once more
// than maxBytes have been produced.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", errors.ErrInputTooLarge, maxBytes)
	}
	return data, nil
}

// Decompress inflates data when it starts with a known compression magic
// number and returns it unchanged otherwise.
func Decompress(data []byte, maxBytes int64) ([]byte, error) {
	format := Detect(data)
	if format == None {
		return data, nil
	}

	out, err := format.decompress(data, maxBytes)
	if err != nil {
		if stderrors.Is(err, errors.ErrInputTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", format, err)
	}
	return out, nil
}
