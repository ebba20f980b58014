package response

import (
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core/handler"
)

// Render runs resp and routes a render error to onErr[0], or ErrorHandler
// when none is given. A nil resp writes nothing.
func Render(w http.ResponseWriter, r *http.Request, resp handler.Response, onErr ...handler.ErrorHandler) {
	if resp == nil {
		return
	}
	if err := resp(w, r); err != nil {
		if len(onErr) > 0 && onErr[0] != nil {
			onErr[0](w, r, err)
			return
		}
		ErrorHandler(w, r, err)
	}
}

// String renders plain text with 200.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

func StringWithStatus(content string, status int) handler.Response {
	return BytesWithStatus([]byte(content), "text/plain; charset=utf-8", status)
}

// HTML renders markup that is already escaped; it does no templating.
func HTML(content string) handler.Response {
	return HTMLWithStatus(content, http.StatusOK)
}

func HTMLWithStatus(content string, status int) handler.Response {
	return BytesWithStatus([]byte(content), "text/html; charset=utf-8", status)
}

// BytesWithStatus writes content as-is. An empty contentType leaves the header
// to net/http sniffing, a zero status means 200.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(content) > 0 {
			_, err := w.Write(content)
			return err
		}
		return nil
	}
}

// Status writes only a status line.
func Status(code int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		return nil
	}
}
