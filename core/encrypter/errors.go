package encrypter

import "errors"

var (
	// ErrInvalidKeySize is returned when an explicit key is not 16, 24 or 32 bytes long.
	ErrInvalidKeySize = errors.New("encrypter: key must be 16, 24 or 32 bytes")

	// ErrSecretTooShort is returned when a derivation secret is shorter than MinSecretLength.
	ErrSecretTooShort = errors.New("encrypter: secret is too short")

	// ErrDecryptionFailed is returned when ciphertext is corrupt, truncated or sealed with another key.
	ErrDecryptionFailed = errors.New("encrypter: decryption failed")

	// ErrKeyGeneration is returned when the system random source fails.
	ErrKeyGeneration = errors.New("encrypter: failed to generate key")
)
