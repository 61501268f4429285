package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// mergeTrigger adds event to an HX-Trigger JSON object. An existing value
// that is not a JSON object is replaced.
func mergeTrigger(existing, event string, payload any) (string, error) {
	merged := make(map[string]any)
	if existing != "" {
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			merged = make(map[string]any)
		}
	}
	merged[event] = payload
	data, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX, merged into any triggers already set. It also sets
// a flash cookie so toasts survive regular (non-HTMX) redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	toast := map[string]string{"message": message, "type": toastType}

	trigger, err := mergeTrigger(e.Response.Header().Get("HX-Trigger"), "showToast", toast)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", trigger)

	cookieVal, err := json.Marshal(toast)
	if err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// JSON clients get {"error": message} instead.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	if wantsJSON(e.Request) {
		return e.JSON(statusCode, map[string]any{"error": message})
	}
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// wantsJSON reports whether the client asked for JSON instead of HTML.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
