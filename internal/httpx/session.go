package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/uniblox/ecommerce-store/internal/sessions"
)

type sessionKey struct{}

// SessionMiddleware resolves the client's session id from a cookie, minting
// and setting a new one when absent, and registers it with the session
// store. Handlers read the resolved id via SessionID; they never see the
// cookie mechanics.
func SessionMiddleware(store *sessions.Store, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
				id = c.Value
			} else {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
				})
			}
			store.Ensure(id)
			ctx := context.WithValue(r.Context(), sessionKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session id resolved by SessionMiddleware.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}
