// Package encrypter provides symmetric encryption of opaque byte blobs for
// client-visible session storage.
//
// The default implementation is AES-GCM. The nonce is generated per call and
// prepended to the ciphertext, so encrypting the same plaintext twice yields
// different outputs while Decrypt(Encrypt(x)) always returns x.
//
// # Keys
//
// An explicit key must be 16, 24 or 32 bytes (AES-128, AES-192, AES-256).
// Any other size is rejected by New with ErrInvalidKeySize:
//
//	enc, err := encrypter.New(key)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// A key can be derived from a long application secret with HKDF-SHA256:
//
//	enc, err := encrypter.NewFromSecret(os.Getenv("SESSION_SECRET"), []byte("cookie-store"))
//
// NewRandom generates an ephemeral key. Everything encrypted with it becomes
// unreadable after a process restart, which drops all client-side sessions:
//
//	enc, err := encrypter.NewRandom()
//
// # Empty Input
//
// Encrypt and Decrypt treat nil and empty input as a no-op and return nil.
//
// # Errors
//
// Decrypt never panics on corrupt or forged input. It returns ErrDecryptionFailed,
// which callers treat as "no data".
package encrypter
