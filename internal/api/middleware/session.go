package middleware

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/example/furnishop/internal/auth"
)

type contextKey string

const (
	UserContextKey    contextKey = "user"
	SessionContextKey contextKey = "session"
)

// GuestSession is the session every anonymous request shares. Guests still
// get a working cart and wishlist, they just all share one.
const GuestSession = "guest"

// ExtractToken extracts the JWT from cookie or Authorization header
func ExtractToken(r *http.Request) string {
	// Try cookie first (for browser)
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	// Fall back to Authorization header (for API clients)
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionMiddleware resolves the session identity every cart and wishlist
// action is keyed by. A valid JWT wins, then the X-Session-ID header, then
// the shared guest session. It never rejects a request.
func SessionMiddleware(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID := GuestSession

			if tokenString := ExtractToken(r); tokenString != "" {
				if claims, err := jwtService.ValidateToken(tokenString); err == nil {
					ctx = context.WithValue(ctx, UserContextKey, claims)
					sessionID = claims.Subject
				}
			}
			if sessionID == GuestSession {
				if headerID := r.Header.Get("X-Session-ID"); headerID != "" {
					sessionID = headerID
				}
			}

			ctx = context.WithValue(ctx, SessionContextKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID returns the session identity resolved by SessionMiddleware
func GetSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(SessionContextKey).(string); ok && sessionID != "" {
		return sessionID
	}
	return GuestSession
}

// GetUserFromContext retrieves user claims from the request context
func GetUserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}

// Logging logs each request the way the rest of the system logs events
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
