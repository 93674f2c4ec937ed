package api

import (
	"context"
	"net/http"
	"os"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/garnizeh/leaddesk/internal/auth"
)

type ctxKey string

// CtxPrincipal carries the authenticated *auth.Claims on protected requests.
const CtxPrincipal ctxKey = "principal"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// sessionPrincipal extracts and verifies the session cookie. Every failure
// mode (missing cookie, malformed, expired, bad signature) yields nil so
// callers cannot leak which check failed.
func sessionPrincipal(r *http.Request, tokens *auth.Manager) *auth.Claims {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := tokens.Verify(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// SessionMiddleware gates API operations: requests without a valid session
// cookie get a uniform 401, valid ones proceed with the principal attached to
// the request context.
func SessionMiddleware(tokens *auth.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := sessionPrincipal(r, tokens)
			if claims == nil {
				writeError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CtxPrincipal, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSessionPage gates browser-facing routes: unauthenticated access
// redirects to the login page instead of answering 401.
func RequireSessionPage(tokens *auth.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := sessionPrincipal(r, tokens)
			if claims == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), CtxPrincipal, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectIfAuthenticated sends an already signed-in browser from the login
// page straight to the dashboard, preventing a re-login loop.
func RedirectIfAuthenticated(tokens *auth.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := sessionPrincipal(r, tokens); claims != nil {
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFrom returns the authenticated principal attached by the session
// middleware, or nil outside a protected route.
func PrincipalFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(CtxPrincipal).(*auth.Claims)
	return claims
}
