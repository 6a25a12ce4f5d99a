package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const ProfileIDKey contextKey = "profileID"

// ProfileAuthMiddleware requires the X-Profile-ID header and puts it on the
// request context. A profile ID is an opaque client-generated token, the
// server-side equivalent of one browser's storage namespace; there is no
// account lookup behind it.
func ProfileAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profileID := strings.TrimSpace(r.Header.Get("X-Profile-ID"))
		if profileID == "" {
			respondWithError(w, http.StatusUnauthorized, "X-Profile-ID header required")
			return
		}
		if len(profileID) > 128 {
			respondWithError(w, http.StatusUnauthorized, "Invalid profile ID")
			return
		}

		ctx := context.WithValue(r.Context(), ProfileIDKey, profileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetProfileID extracts the profile ID from context.
func GetProfileID(ctx context.Context) (string, bool) {
	profileID, ok := ctx.Value(ProfileIDKey).(string)
	return profileID, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, message)))
}
