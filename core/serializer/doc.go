// Package serializer turns session values into bytes and back.
//
// Values are written as JSON envelopes tagged with a registered type name, so
// a decoded value has the same Go type it was stored with:
//
//	s := serializer.New()
//	data, err := s.Marshal(profile.NewMap(p))
//	v, err := s.Unmarshal(data) // v is *profile.Map
//
// Built-in types cover strings, booleans, integers, floats, string slices,
// profiles, profile maps and nested map[string]any records. Application types
// are registered once at startup:
//
//	serializer.Register[Cart](s, "app.cart")
//
// Register is not safe to call concurrently with Marshal or Unmarshal.
//
// # Codec
//
// Codec layers compression and encryption on top of the serializer. Stored
// bytes are encrypt(compress(serialize(value))). Compression matters: cookie
// transports cap a value at roughly 4KB and multi-profile records exceed that
// quickly when left uncompressed.
//
//	codec := serializer.NewCodec(s, compressor, enc)
//	blob, err := codec.Encode(record)
//	record, err := codec.Decode(blob)
//
// Every decoding failure (bad ciphertext, bad compression stream, bad JSON,
// unknown type tag) is reported as ErrCorrupt. DecodeOrNil swallows it for
// callers that treat corrupt state as absent state.
package serializer
