// Package middlewares carries the HTTP middlewares of the order service.
package middlewares

import (
	"context"
	"net/http"
)

// HeaderXCustomerID carries the authenticated customer id, set by the auth
// gateway after token validation. JWT mechanics are out of scope here; the
// id is threaded explicitly instead of read from an ambient principal.
const HeaderXCustomerID = "X-Customer-Id"

// contextKey is unexported so no other package can collide with our keys.
type contextKey string

const contextKeyCustomerID contextKey = "customer-id"

// CustomerIdentity copies the authenticated customer id from the request
// header into the context.
func CustomerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID := r.Header.Get(HeaderXCustomerID)
		ctx := context.WithValue(r.Context(), contextKeyCustomerID, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CustomerIDFromContext returns the authenticated customer id, or "" when
// the request carried none.
func CustomerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyCustomerID).(string)
	return id
}
