package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"orgregistry/pkg/requestcontext"
)

// RequestMeta stamps every request with a request id and a request-scoped
// time so all downstream timestamps within one request agree.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
