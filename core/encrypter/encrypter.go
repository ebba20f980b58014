package encrypter

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// DefaultKeySize is the size of generated ephemeral keys (AES-128).
	DefaultKeySize = 16
	// DerivedKeySize is the size of keys derived from a secret (AES-256).
	DerivedKeySize = 32
	// MinSecretLength is the minimum secret length accepted by NewFromSecret.
	MinSecretLength = 32
)

// Encrypter encrypts and decrypts opaque byte slices.
type Encrypter interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// AESEncrypter implements Encrypter with AES-GCM.
// It is safe for concurrent use.
type AESEncrypter struct {
	aead cipher.AEAD
}

// New creates an AES-GCM encrypter for the given key.
func New(key []byte) (*AESEncrypter, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrInvalidKeySize, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESEncrypter{aead: aead}, nil
}

// NewRandom creates an encrypter with an ephemeral random key.
func NewRandom() (*AESEncrypter, error) {
	key, err := GenerateKey(DefaultKeySize)
	if err != nil {
		return nil, err
	}
	return New(key)
}

// NewFromSecret derives a 256-bit key from secret using HKDF-SHA256.
// The salt separates keys derived from the same secret for different purposes.
func NewFromSecret(secret string, salt []byte) (*AESEncrypter, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: %d chars, need at least %d", ErrSecretTooShort, len(secret), MinSecretLength)
	}

	key := make([]byte, DerivedKeySize)
	kdf := hkdf.New(sha256.New, []byte(secret), salt, []byte("gatekeeper encrypter"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, errors.Join(ErrKeyGeneration, err)
	}

	return New(key)
}

// GenerateKey returns size random bytes suitable for New.
func GenerateKey(size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, errors.Join(ErrKeyGeneration, err)
	}
	return key, nil
}

// Encrypt seals plaintext. The returned slice is nonce || ciphertext.
func (e *AESEncrypter) Encrypt(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, nil
	}

	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(plaintext)+e.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrKeyGeneration, err)
	}

	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt.
func (e *AESEncrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}

	nonceSize := e.aead.NonceSize()
	if len(ciphertext) < nonceSize+e.aead.Overhead() {
		return nil, ErrDecryptionFailed
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// Noop passes data through unchanged. It is used when a store runs on a
// trusted backend and encryption is not wanted.
type Noop struct{}

// Encrypt returns plaintext unchanged.
func (Noop) Encrypt(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, nil
	}
	return plaintext, nil
}

// Decrypt returns ciphertext unchanged.
func (Noop) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}
	return ciphertext, nil
}
