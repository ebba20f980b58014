package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// Returns empty Attr for all nil errors.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component identifies the emitting component.
func Component(name string) slog.Attr {
	return stringAttr("component", name)
}

// Client identifies an authentication client by name.
func Client(name string) slog.Attr {
	return stringAttr("client", name)
}

// Clients lists resolved client names.
func Clients(names []string) slog.Attr {
	if len(names) == 0 {
		return slog.Attr{}
	}
	return slog.Any("clients", names)
}

// SessionID identifies a session. Only a short prefix is logged.
func SessionID(id string) slog.Attr {
	if len(id) > 8 {
		id = id[:8]
	}
	return stringAttr("session_id", id)
}

// ProfileID identifies an authenticated profile.
func ProfileID(id string) slog.Attr {
	return stringAttr("profile_id", id)
}

// Key names a session record key.
func Key(key string) slog.Attr {
	return stringAttr("key", key)
}

// State names a security decision state.
func State(state string) slog.Attr {
	return stringAttr("state", state)
}

// Path creates an attribute for a request path.
func Path(path string) slog.Attr {
	return stringAttr("path", path)
}

// Method creates an attribute for the HTTP method.
func Method(method string) slog.Attr {
	return stringAttr("method", method)
}

// StatusCode creates an attribute for an HTTP status code.
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status_code", code)
}

// RequestID creates an attribute for a request identifier.
func RequestID(id string) slog.Attr {
	return stringAttr("request_id", id)
}

// RemoteAddr creates an attribute for the peer address.
func RemoteAddr(addr string) slog.Attr {
	return stringAttr("remote_addr", addr)
}

// Size creates an attribute for a payload size in bytes.
func Size(n int) slog.Attr {
	return slog.Int("size", n)
}

func stringAttr(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
