package middleware

import (
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	statusCode  int
	contentType string
	body        []byte
}

// CacheMiddleware memoizes successful GET responses for a short TTL. Used for
// the placement matrix, which is expensive to build and read far more often
// than the underlying data changes.
type CacheMiddleware struct {
	store *cache.Cache
}

func NewCacheMiddleware(ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		store: cache.New(ttl, 2*ttl),
	}
}

type captureWriter struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

func (w *captureWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (m *CacheMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if cached, ok := m.store.Get(key); ok {
			entry := cached.(cachedResponse)
			w.Header().Set("Content-Type", entry.contentType)
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(entry.statusCode)
			w.Write(entry.body)
			return
		}

		capture := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(capture, r)

		if capture.statusCode == http.StatusOK {
			m.store.Set(key, cachedResponse{
				statusCode:  capture.statusCode,
				contentType: capture.Header().Get("Content-Type"),
				body:        capture.body,
			}, cache.DefaultExpiration)
		}
	})
}
