package encrypter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/core/encrypter"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("accepts AES key sizes", func(t *testing.T) {
		t.Parallel()

		for _, size := range []int{16, 24, 32} {
			enc, err := encrypter.New(bytes.Repeat([]byte{1}, size))
			require.NoError(t, err, "size %d", size)
			assert.NotNil(t, enc)
		}
	})

	t.Run("rejects invalid key sizes", func(t *testing.T) {
		t.Parallel()

		for _, size := range []int{0, 1, 15, 17, 31, 33, 64} {
			enc, err := encrypter.New(make([]byte, size))
			require.ErrorIs(t, err, encrypter.ErrInvalidKeySize, "size %d", size)
			assert.Nil(t, enc)
		}
	})
}

func TestNewFromSecret(t *testing.T) {
	t.Parallel()

	t.Run("short secret fails", func(t *testing.T) {
		t.Parallel()

		_, err := encrypter.NewFromSecret("short", nil)
		require.ErrorIs(t, err, encrypter.ErrSecretTooShort)
	})

	t.Run("same secret and salt decrypts", func(t *testing.T) {
		t.Parallel()

		secret := strings.Repeat("s", 40)
		a, err := encrypter.NewFromSecret(secret, []byte("salt"))
		require.NoError(t, err)
		b, err := encrypter.NewFromSecret(secret, []byte("salt"))
		require.NoError(t, err)

		sealed, err := a.Encrypt([]byte("payload"))
		require.NoError(t, err)

		plain, err := b.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), plain)
	})

	t.Run("different salt cannot decrypt", func(t *testing.T) {
		t.Parallel()

		secret := strings.Repeat("s", 40)
		a, err := encrypter.NewFromSecret(secret, []byte("one"))
		require.NoError(t, err)
		b, err := encrypter.NewFromSecret(secret, []byte("two"))
		require.NoError(t, err)

		sealed, err := a.Encrypt([]byte("payload"))
		require.NoError(t, err)

		_, err = b.Decrypt(sealed)
		assert.ErrorIs(t, err, encrypter.ErrDecryptionFailed)
	})
}

func TestAESEncrypter_RoundTrip(t *testing.T) {
	t.Parallel()

	enc, err := encrypter.NewRandom()
	require.NoError(t, err)

	inputs := [][]byte{
		{0},
		[]byte("hello"),
		bytes.Repeat([]byte{0xff}, 4096),
		[]byte(strings.Repeat("profile data ", 200)),
	}

	for _, in := range inputs {
		sealed, err := enc.Encrypt(in)
		require.NoError(t, err)
		assert.NotEqual(t, in, sealed)

		out, err := enc.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestAESEncrypter_Empty(t *testing.T) {
	t.Parallel()

	enc, err := encrypter.NewRandom()
	require.NoError(t, err)

	out, err := enc.Encrypt(nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = enc.Encrypt([]byte{})
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = enc.Decrypt(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestAESEncrypter_NonceIsRandom(t *testing.T) {
	t.Parallel()

	enc, err := encrypter.NewRandom()
	require.NoError(t, err)

	a, err := enc.Encrypt([]byte("same"))
	require.NoError(t, err)
	b, err := enc.Encrypt([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestAESEncrypter_Tampered(t *testing.T) {
	t.Parallel()

	enc, err := encrypter.NewRandom()
	require.NoError(t, err)

	sealed, err := enc.Encrypt([]byte("secret value"))
	require.NoError(t, err)

	for i := range sealed {
		tampered := bytes.Clone(sealed)
		tampered[i] ^= 0x01

		out, err := enc.Decrypt(tampered)
		require.ErrorIs(t, err, encrypter.ErrDecryptionFailed, "byte %d", i)
		assert.Nil(t, out)
	}

	_, err = enc.Decrypt([]byte{1, 2, 3})
	assert.ErrorIs(t, err, encrypter.ErrDecryptionFailed)
}

func TestAESEncrypter_WrongKey(t *testing.T) {
	t.Parallel()

	a, err := encrypter.NewRandom()
	require.NoError(t, err)
	b, err := encrypter.NewRandom()
	require.NoError(t, err)

	sealed, err := a.Encrypt([]byte("data"))
	require.NoError(t, err)

	_, err = b.Decrypt(sealed)
	assert.ErrorIs(t, err, encrypter.ErrDecryptionFailed)
}

func TestNoop(t *testing.T) {
	t.Parallel()

	var enc encrypter.Encrypter = encrypter.Noop{}

	out, err := enc.Encrypt([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), out)

	out, err = enc.Decrypt(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
