package serializer

import (
	"errors"

	"github.com/klauspost/compress/zstd"
)

// DefaultMaxDecodedSize bounds decompressed payloads to protect against
// decompression bombs in client-supplied cookies.
const DefaultMaxDecodedSize = 1 << 20

// Compressor compresses serialized payloads.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Zstd compresses with zstandard. It is safe for concurrent use.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstd creates a zstandard compressor. maxDecodedSize of 0 uses DefaultMaxDecodedSize.
func NewZstd(maxDecodedSize uint64) (*Zstd, error) {
	if maxDecodedSize == 0 {
		maxDecodedSize = DefaultMaxDecodedSize
	}

	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(maxDecodedSize),
		zstd.WithDecoderConcurrency(0),
	)
	if err != nil {
		return nil, err
	}

	return &Zstd{enc: enc, dec: dec}, nil
}

// Compress returns the zstd frame for data. Empty input returns nil.
func (z *Zstd) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return z.enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Decompress decodes a zstd frame. Empty input returns nil.
func (z *Zstd) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := z.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	return out, nil
}

// NoCompression passes data through unchanged.
type NoCompression struct{}

// Compress returns data unchanged.
func (NoCompression) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data unchanged.
func (NoCompression) Decompress(data []byte) ([]byte, error) { return data, nil }
