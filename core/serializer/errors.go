package serializer

import "errors"

var (
	// ErrUnsupportedType is returned when marshaling a value whose type is not registered.
	ErrUnsupportedType = errors.New("serializer: unsupported type")

	// ErrUnknownType is returned when a payload carries an unregistered type tag.
	ErrUnknownType = errors.New("serializer: unknown type tag")

	// ErrDuplicateType is returned when a type name or Go type is registered twice.
	ErrDuplicateType = errors.New("serializer: type already registered")

	// ErrCorrupt is returned when a payload fails decryption, decompression or decoding.
	ErrCorrupt = errors.New("serializer: corrupt payload")
)
