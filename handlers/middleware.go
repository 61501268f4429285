package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/security"
)

type contextKey string

const EngineSessionKey contextKey = "engineSession"

const engineSessionCookie = "engine_session"

// GetEngineSessionID extracts the engine session id from the request context.
func GetEngineSessionID(r *http.Request) string {
	if val, ok := r.Context().Value(EngineSessionKey).(string); ok {
		return val
	}
	return ""
}

// EngineSessionMiddleware reads the "engine_session" cookie, issuing a new
// id when it is missing, and stores the id in the request context so the
// engine handlers can find the browser's session. The cookie is re-sent on
// every request so an active session does not expire.
func EngineSessionMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := ""
		if cookie, err := e.Request.Cookie(engineSessionCookie); err == nil {
			id = cookie.Value
		}
		if !validSessionID(id) {
			if id != "" {
				log.Printf("middleware: discarding malformed engine session cookie")
			}
			id = security.RandomString(24)
		}
		http.SetCookie(e.Response, &http.Cookie{
			Name:     engineSessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   60 * 60 * 12,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(e.Request.Context(), EngineSessionKey, id)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

func validSessionID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
