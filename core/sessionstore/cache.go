package sessionstore

import (
	"errors"
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekeeper/core/cache"
	"github.com/dmitrymomot/gatekeeper/core/cookie"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/serializer"
)

// CacheStore keeps session records in a cache.Store. The client only holds
// the session identifier cookie.
type CacheStore struct {
	cache cache.Store
	codec *serializer.Codec
	opts  options
	attr  string
}

// requestState is the per-request view of the session.
type requestState struct {
	id     string
	record Record
	loaded bool
	// writes made during this request; a nil value marks a removed key.
	writes map[string]any
}

var _ Store = (*CacheStore)(nil)

// NewCacheStore creates a cache-backed store.
func NewCacheStore(c cache.Store, codec *serializer.Codec, opts ...Option) (*CacheStore, error) {
	if c == nil {
		return nil, ErrMissingCache
	}
	if codec == nil {
		return nil, ErrMissingCodec
	}

	o := defaultOptions(DefaultCachePrefix)
	for _, opt := range opts {
		opt(&o)
	}

	return &CacheStore{
		cache: c,
		codec: codec,
		opts:  o,
		attr:  "sessionstore.cache." + o.cookieName,
	}, nil
}

// KeyFor returns the per-key address of key within session id.
func (s *CacheStore) KeyFor(id, key string) string {
	return s.recordKey(id) + "$" + key
}

// SessionID returns the identifier for the request. The request attribute wins
// over the cookie. A new identifier is minted only when create is true.
func (s *CacheStore) SessionID(ctx handler.Context, create bool) (string, bool, error) {
	if st := s.state(ctx); st != nil {
		return st.id, true, nil
	}

	if v, ok := ctx.Cookie(s.opts.cookieName); ok {
		if _, err := uuid.Parse(v); err == nil {
			s.bind(ctx, v)
			return v, true, nil
		}
		s.opts.logger.DebugContext(ctx, "ignoring malformed session cookie", logger.Key(s.opts.cookieName))
	}

	if !create {
		return "", false, nil
	}

	id := s.mint(ctx)
	s.opts.logger.DebugContext(ctx, "session created", logger.SessionID(id))
	return id, true, nil
}

// Get returns the value stored under key in the current session.
func (s *CacheStore) Get(ctx handler.Context, key string) (any, bool) {
	if _, ok, _ := s.SessionID(ctx, false); !ok {
		return nil, false
	}

	st := s.state(ctx)
	if !st.loaded {
		st.record = s.fetch(ctx, st.id)
		st.loaded = true
	}

	v, ok := st.record[key]
	return v, ok
}

// Set stores value under key, creating a session when needed. The whole
// record is fetched, merged and written back.
func (s *CacheStore) Set(ctx handler.Context, key string, value any) error {
	id, _, err := s.SessionID(ctx, true)
	if err != nil {
		return err
	}
	st := s.state(ctx)

	if value != nil {
		value = stripSensitive(value)
	}
	st.writes[key] = value

	record := s.fetch(ctx, id)
	apply(record, st.writes)

	if err := s.save(ctx, id, record); err != nil {
		return err
	}
	s.opts.logger.DebugContext(ctx, "session key written", logger.Key(s.KeyFor(id, key)))

	st.record = record
	st.loaded = true
	return nil
}

// Destroy forgets the session identifier and removes the cached record.
// Removal is best effort; an orphaned record is unreachable and expires by TTL.
func (s *CacheStore) Destroy(ctx handler.Context) (bool, error) {
	id, ok, _ := s.SessionID(ctx, false)
	ctx.RemoveAttribute(s.attr)
	if !ok {
		return false, nil
	}

	ctx.SetCookie(cookie.Expired(s.opts.cookieName, s.opts.cookie))

	if err := s.cache.Remove(ctx, s.recordKey(id)); err != nil {
		s.opts.logger.WarnContext(ctx, "failed to remove destroyed session",
			logger.SessionID(id),
			logger.Error(err),
		)
	}

	s.opts.logger.DebugContext(ctx, "session destroyed", logger.SessionID(id))
	return true, nil
}

// Renew moves the session record to a freshly minted identifier. Writes made
// earlier in this request are carried over even if the backing cache lost them.
func (s *CacheStore) Renew(ctx handler.Context) (bool, error) {
	oldID, ok, _ := s.SessionID(ctx, false)
	if !ok {
		return false, nil
	}
	st := s.state(ctx)
	writes := maps.Clone(st.writes)

	record := s.fetch(ctx, oldID)
	apply(record, writes)

	newID := s.mint(ctx)
	if len(record) > 0 {
		if err := s.save(ctx, newID, record); err != nil {
			return false, err
		}
	}

	if err := s.cache.Remove(ctx, s.recordKey(oldID)); err != nil {
		return false, fmt.Errorf("%w: remove renewed session: %w", ErrSessionUnavailable, err)
	}

	st = s.state(ctx)
	st.record = record
	st.loaded = true
	st.writes = writes

	s.opts.logger.DebugContext(ctx, "session renewed",
		logger.Group("old", logger.SessionID(oldID)),
		logger.SessionID(newID),
	)
	return true, nil
}

func (s *CacheStore) recordKey(id string) string {
	return s.opts.prefix + "$" + id
}

func (s *CacheStore) state(ctx handler.Context) *requestState {
	v, ok := ctx.Attribute(s.attr)
	if !ok {
		return nil
	}
	st, _ := v.(*requestState)
	return st
}

func (s *CacheStore) bind(ctx handler.Context, id string) *requestState {
	st := &requestState{id: id, writes: make(map[string]any)}
	ctx.SetAttribute(s.attr, st)
	return st
}

func (s *CacheStore) mint(ctx handler.Context) string {
	id := uuid.NewString()
	ctx.SetCookie(cookie.Build(s.opts.cookieName, id, s.opts.cookie))
	s.bind(ctx, id)
	return id
}

// fetch loads the record for id. Missing, unreadable and corrupt records
// all read as empty.
func (s *CacheStore) fetch(ctx handler.Context, id string) Record {
	data, found, err := s.cache.Get(ctx, s.recordKey(id))
	if err != nil {
		s.opts.logger.WarnContext(ctx, "failed to read session",
			logger.SessionID(id),
			logger.Error(err),
		)
		return Record{}
	}
	if !found {
		return Record{}
	}

	v, err := s.codec.Decode(data)
	if err != nil {
		s.opts.logger.WarnContext(ctx, "discarding corrupt session",
			logger.SessionID(id),
			logger.Error(err),
		)
		return Record{}
	}

	record, ok := v.(Record)
	if !ok {
		s.opts.logger.WarnContext(ctx, "discarding session with unexpected payload", logger.SessionID(id))
		return Record{}
	}
	return cloneRecord(record)
}

func (s *CacheStore) save(ctx handler.Context, id string, record Record) error {
	data, err := s.codec.Encode(record)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(ctx, s.recordKey(id), data, s.opts.ttl); err != nil {
		return errors.Join(ErrSessionUnavailable, err)
	}
	return nil
}

func apply(record Record, writes map[string]any) {
	for k, v := range writes {
		if v == nil {
			delete(record, k)
			continue
		}
		record[k] = v
	}
}
