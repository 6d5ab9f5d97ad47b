package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws to h so that the first middleware is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Timeout bounds the request context. Handlers observe the deadline through
// ctx.Done(); blocking database calls return context.DeadlineExceeded.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recover turns a handler panic into a 500 and logs it.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slogx.FromContext(r.Context()).Error("panic serving request", "panic", rec)
					WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
