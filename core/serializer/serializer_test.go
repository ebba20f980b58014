package serializer_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/core/encrypter"
	"github.com/dmitrymomot/gatekeeper/core/profile"
	"github.com/dmitrymomot/gatekeeper/core/serializer"
)

type cart struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

func sampleProfiles() *profile.Map {
	a := profile.New("alice", "form")
	a.AddRoles("admin")
	a.AddPermissions("read", "write")
	a.SetAttribute("email", "alice@example.com")

	b := profile.New("svc-42", "bearer")
	b.AddRoles("service")

	return profile.NewMap(a, b)
}

func TestSerializer_RoundTrip(t *testing.T) {
	t.Parallel()

	s := serializer.New()
	require.NoError(t, serializer.Register[cart](s, "test.cart"))

	values := []any{
		nil,
		"https://example.com/protected?x=1",
		true,
		42,
		int64(1 << 40),
		3.5,
		[]string{"a", "b"},
		*profile.New("bob", "basic"),
		profile.New("carol", "form"),
		sampleProfiles(),
		cart{Items: []string{"x"}, Total: 3},
		map[string]any{
			"userProfiles": sampleProfiles(),
			"requestedUrl": "/admin",
			"nested":       map[string]any{"n": 1},
		},
	}

	for _, v := range values {
		t.Run(fmt.Sprintf("%T", v), func(t *testing.T) {
			data, err := s.Marshal(v)
			require.NoError(t, err)

			got, err := s.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestSerializer_Unsupported(t *testing.T) {
	t.Parallel()

	s := serializer.New()

	_, err := s.Marshal(struct{ X int }{1})
	assert.ErrorIs(t, err, serializer.ErrUnsupportedType)

	_, err = s.Marshal(map[string]any{"bad": make(chan int)})
	assert.ErrorIs(t, err, serializer.ErrUnsupportedType)
}

func TestSerializer_ProfileAttributesKeepTypes(t *testing.T) {
	t.Parallel()

	s := serializer.New()
	require.NoError(t, serializer.Register[cart](s, "test.cart"))

	p := profile.New("alice", "form")
	p.SetAttribute("age", 42)
	p.SetAttribute("groups", []string{"ops", "dev"})
	p.SetAttribute("ratio", 0.5)
	p.SetAttribute("cart", cart{Items: []string{"x"}, Total: 3})
	p.SetAttribute("prefs", map[string]any{"theme": "dark", "size": int64(12)})
	p.SetSensitive("pin", 1234)

	for _, v := range []any{p, *p, profile.NewMap(p)} {
		t.Run(fmt.Sprintf("%T", v), func(t *testing.T) {
			data, err := s.Marshal(v)
			require.NoError(t, err)

			got, err := s.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}

	data, err := s.Marshal(p)
	require.NoError(t, err)
	got, err := s.Unmarshal(data)
	require.NoError(t, err)
	age, ok := got.(*profile.Profile).Attribute("age")
	require.True(t, ok)
	assert.IsType(t, 0, age)
}

func TestSerializer_UnsupportedProfileAttribute(t *testing.T) {
	t.Parallel()

	s := serializer.New()
	p := profile.New("alice", "form")
	p.SetAttribute("tags", []any{"a", 1})

	_, err := s.Marshal(p)
	assert.ErrorIs(t, err, serializer.ErrUnsupportedType)

	_, err = s.Marshal(profile.NewMap(p))
	assert.ErrorIs(t, err, serializer.ErrUnsupportedType)
}

func TestSerializer_Register(t *testing.T) {
	t.Parallel()

	s := serializer.New()
	require.NoError(t, serializer.Register[cart](s, "cart"))

	assert.ErrorIs(t, serializer.Register[cart](s, "other"), serializer.ErrDuplicateType)
	assert.ErrorIs(t, serializer.Register[uint8](s, "cart"), serializer.ErrDuplicateType)
	assert.ErrorIs(t, serializer.Register[uint16](s, "record"), serializer.ErrDuplicateType)
}

func TestSerializer_CorruptInput(t *testing.T) {
	t.Parallel()

	s := serializer.New()

	inputs := [][]byte{
		[]byte("not json"),
		[]byte(`{"t":"unknown","d":1}`),
		[]byte(`{"t":"int","d":"x"}`),
		[]byte(`{"t":"record","d":[1]}`),
		[]byte(`{"t":"profiles","d":{"x":1}}`),
	}

	for _, in := range inputs {
		_, err := s.Unmarshal(in)
		assert.ErrorIs(t, err, serializer.ErrCorrupt, string(in))
	}

	_, err := s.Unmarshal([]byte(`{"t":"unknown"}`))
	assert.ErrorIs(t, err, serializer.ErrUnknownType)
}

func newCodec(t *testing.T) *serializer.Codec {
	t.Helper()

	z, err := serializer.NewZstd(0)
	require.NoError(t, err)
	enc, err := encrypter.NewRandom()
	require.NoError(t, err)

	return serializer.NewCodec(serializer.New(), z, enc)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	record := map[string]any{
		"userProfiles": sampleProfiles(),
		"requestedUrl": "/dashboard",
	}

	blob, err := codec.Encode(record)
	require.NoError(t, err)

	got, err := codec.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestCodec_CompressesLargeRecords(t *testing.T) {
	t.Parallel()

	m := &profile.Map{}
	for i := range 20 {
		p := profile.New(fmt.Sprintf("user-%d", i), fmt.Sprintf("client-%d", i))
		p.AddRoles("admin", "editor", "viewer")
		p.SetAttribute("description", strings.Repeat("lorem ipsum ", 20))
		m.Set(p.ClientName, p)
	}

	raw, err := serializer.New().Marshal(m)
	require.NoError(t, err)

	blob, err := newCodec(t).Encode(m)
	require.NoError(t, err)

	assert.Less(t, len(blob), len(raw)/2)
}

func TestCodec_Tampered(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	blob, err := codec.Encode("value")
	require.NoError(t, err)

	tampered := bytes.Clone(blob)
	tampered[len(tampered)/2] ^= 0xff

	_, err = codec.Decode(tampered)
	require.ErrorIs(t, err, serializer.ErrCorrupt)
	assert.Nil(t, codec.DecodeOrNil(tampered))
}

func TestCodec_Empty(t *testing.T) {
	t.Parallel()

	v, err := newCodec(t).Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCodec_Defaults(t *testing.T) {
	t.Parallel()

	codec := serializer.NewCodec(nil, nil, nil)
	blob, err := codec.Encode([]string{"a"})
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"strings"`)

	v, err := codec.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)
}

func TestZstd_CorruptStream(t *testing.T) {
	t.Parallel()

	z, err := serializer.NewZstd(0)
	require.NoError(t, err)

	_, err = z.Decompress([]byte("definitely not zstd"))
	assert.ErrorIs(t, err, serializer.ErrCorrupt)
}
