package middleware

import (
	"context"
	"net/http"

	"avkngifts-api/pkg/uid"
)

// SessionIDKey is the context key for the session ID.
const SessionIDKey contextKey = "session_id"

// SessionHeader carries the opaque session id between the storefront and the
// API. Sessions are anonymous: the id is not a credential, only a handle to
// the persisted cart/key/friend-code document.
const SessionHeader = "X-Session-ID"

// Session resolves or mints the session id for each request and echoes it
// back so first-time clients can persist it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" || !uid.IsValid(sessionID) {
			sessionID = uid.New()
		}

		w.Header().Set(SessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID retrieves the session ID from context.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}
