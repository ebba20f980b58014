package serializer

import (
	"errors"

	"github.com/dmitrymomot/gatekeeper/core/encrypter"
)

// Codec layers serialization, compression and encryption.
type Codec struct {
	serializer *Serializer
	compressor Compressor
	encrypter  encrypter.Encrypter
}

// NewCodec creates a codec. A nil compressor or encrypter disables that layer.
func NewCodec(s *Serializer, c Compressor, e encrypter.Encrypter) *Codec {
	if s == nil {
		s = New()
	}
	if c == nil {
		c = NoCompression{}
	}
	if e == nil {
		e = encrypter.Noop{}
	}
	return &Codec{serializer: s, compressor: c, encrypter: e}
}

// Serializer returns the underlying serializer.
func (c *Codec) Serializer() *Serializer {
	return c.serializer
}

// Encode returns encrypt(compress(serialize(v))).
func (c *Codec) Encode(v any) ([]byte, error) {
	raw, err := c.serializer.Marshal(v)
	if err != nil {
		return nil, err
	}

	packed, err := c.compressor.Compress(raw)
	if err != nil {
		return nil, err
	}

	return c.encrypter.Encrypt(packed)
}

// Decode reverses Encode. Empty input decodes to nil.
func (c *Codec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}

	packed, err := c.encrypter.Decrypt(data)
	if err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}

	raw, err := c.compressor.Decompress(packed)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			return nil, err
		}
		return nil, errors.Join(ErrCorrupt, err)
	}

	return c.serializer.Unmarshal(raw)
}

// DecodeOrNil decodes data and returns nil on any failure.
func (c *Codec) DecodeOrNil(data []byte) any {
	v, err := c.Decode(data)
	if err != nil {
		return nil
	}
	return v
}
