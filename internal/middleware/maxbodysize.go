package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// body sizes to limit bytes. A request advertising a larger Content-Length is
// rejected with 413 before any body bytes are read; chunked requests are
// capped with http.MaxBytesReader, which makes the downstream handler's body
// read fail once the limit is crossed.
//
// Journal transcripts are small; the limit mainly guards the generate
// endpoint against accidental multi-megabyte posts.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
