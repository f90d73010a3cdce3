// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a fixture file is stored on disk.
type Compression uint8

const (
	CompressionNone Compression = iota

	// CompressionZstd is a zstd frame, selected by a ".zst" suffix.
	CompressionZstd

	// CompressionLZ4 is an LZ4 frame (not a raw block), selected by a
	// ".lz4" suffix.
	CompressionLZ4
)

// String returns the human-readable name of a compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Suffix returns the file name suffix for the compression, or "" for
// CompressionNone.
func (c Compression) Suffix() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// CompressionFor returns the compression implied by path's suffix.
func CompressionFor(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(path, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// zstdDecoder is shared across calls; DecodeAll is safe for
// concurrent use. The memory cap bounds a single decompressed frame.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(uint64(DefaultMaxFileSize)),
	)
	if err != nil {
		panic("fixture: zstd decoder initialization failed: " + err.Error())
	}
}

// Decompress returns the decompressed contents of data. At most
// maxSize bytes are produced; a larger payload is an error.
func Decompress(data []byte, compression Compression, maxSize int64) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if int64(len(data)) > maxSize {
			return nil, fmt.Errorf("fixture of %d bytes exceeds limit of %d", len(data), maxSize)
		}
		return data, nil

	case CompressionZstd:
		decompressed, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if int64(len(decompressed)) > maxSize {
			return nil, fmt.Errorf("decompressed fixture of %d bytes exceeds limit of %d", len(decompressed), maxSize)
		}
		return decompressed, nil

	case CompressionLZ4:
		return readLimited(lz4.NewReader(bytes.NewReader(data)), maxSize, "lz4")

	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

func readLimited(reader io.Reader, maxSize int64, label string) ([]byte, error) {
	decompressed, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", label, err)
	}
	if int64(len(decompressed)) > maxSize {
		return nil, fmt.Errorf("decompressed fixture exceeds limit of %d bytes", maxSize)
	}
	return decompressed, nil
}

// Compress encodes data for storage with the given compression. It is
// the inverse of [Decompress] and is used to produce compressed
// fixture bundles.
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil

	case CompressionZstd:
		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(data, nil), nil

	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}
