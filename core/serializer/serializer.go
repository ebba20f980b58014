package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/gatekeeper/core/profile"
)

const (
	typeNil    = "nil"
	typeRecord = "record"
)

type envelope struct {
	Type string          `json:"t"`
	Data json.RawMessage `json:"d,omitempty"`
}

// Serializer encodes registered Go types as tagged JSON.
type Serializer struct {
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// New creates a serializer with the built-in types registered.
func New() *Serializer {
	s := &Serializer{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}

	_ = Register[string](s, "string")
	_ = Register[bool](s, "bool")
	_ = Register[int](s, "int")
	_ = Register[int64](s, "int64")
	_ = Register[float64](s, "float64")
	_ = Register[[]string](s, "strings")
	_ = Register[profile.Profile](s, "profile")
	_ = Register[*profile.Profile](s, "profile_ref")
	_ = Register[*profile.Map](s, "profiles")

	return s
}

// Register adds T under name.
func Register[T any](s *Serializer, name string) error {
	t := reflect.TypeFor[T]()
	if name == typeNil || name == typeRecord {
		return fmt.Errorf("%w: %q is reserved", ErrDuplicateType, name)
	}
	if _, ok := s.byName[name]; ok {
		return fmt.Errorf("%w: name %q", ErrDuplicateType, name)
	}
	if _, ok := s.byType[t]; ok {
		return fmt.Errorf("%w: type %s", ErrDuplicateType, t)
	}
	s.byName[name] = t
	s.byType[t] = name
	return nil
}

// Marshal encodes v.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	env, err := s.wrap(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Unmarshal decodes data produced by Marshal.
func (s *Serializer) Unmarshal(data []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	return s.unwrap(env)
}

func (s *Serializer) wrap(v any) (envelope, error) {
	if v == nil {
		return envelope{Type: typeNil}, nil
	}

	if rec, ok := v.(map[string]any); ok {
		fields, err := s.wrapFields(rec)
		if err != nil {
			return envelope{}, err
		}
		if fields == nil {
			fields = map[string]envelope{}
		}
		data, err := json.Marshal(fields)
		if err != nil {
			return envelope{}, err
		}
		return envelope{Type: typeRecord, Data: data}, nil
	}

	name, ok := s.byType[reflect.TypeOf(v)]
	if !ok {
		return envelope{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	data, err := s.encodeValue(v)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			return envelope{}, err
		}
		return envelope{}, fmt.Errorf("marshal %s: %w", name, err)
	}
	return envelope{Type: name, Data: data}, nil
}

func (s *Serializer) unwrap(env envelope) (any, error) {
	switch env.Type {
	case typeNil:
		return nil, nil
	case typeRecord:
		var fields map[string]envelope
		if err := json.Unmarshal(env.Data, &fields); err != nil {
			return nil, errors.Join(ErrCorrupt, err)
		}
		rec, err := s.unwrapFields(fields)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			rec = map[string]any{}
		}
		return rec, nil
	}

	t, ok := s.byName[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", ErrCorrupt, ErrUnknownType, env.Type)
	}

	if v, ok, err := s.decodeProfileValue(env.Type, env.Data); ok {
		return v, err
	}

	ptr := reflect.New(t)
	if err := json.Unmarshal(env.Data, ptr.Interface()); err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	return ptr.Elem().Interface(), nil
}
