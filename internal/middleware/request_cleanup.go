package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes caps request bodies. Tracker actions carry their
// arguments in the path, so anything larger is a misbehaving client.
const DefaultMaxBodyBytes = 64 << 10

// LimitAndDrainRequest caps the request body at maxBodyBytes and, once the
// handler is done, drains whatever is left so the connection can be reused.
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
