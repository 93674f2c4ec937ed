package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/garnizeh/leaddesk/api"
	"github.com/garnizeh/leaddesk/internal/auth"
)

func protectedRouter(tokens *auth.Manager) *mux.Router {
	r := mux.NewRouter()

	apiRoutes := r.PathPrefix("/api").Subrouter()
	apiRoutes.Use(api.SessionMiddleware(tokens))
	apiRoutes.HandleFunc("/secret", func(w http.ResponseWriter, r *http.Request) {
		claims := api.PrincipalFrom(r.Context())
		w.Write([]byte(claims.Email))
	}).Methods("GET")

	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(api.RequireSessionPage(tokens))
	dashboard.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dashboard"))
	}).Methods("GET")

	r.Handle("/login", api.RedirectIfAuthenticated(tokens)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("login page"))
		}))).Methods("GET")

	return r
}

func signedCookie(t *testing.T, tokens *auth.Manager) *http.Cookie {
	t.Helper()
	token, err := tokens.Sign(auth.Claims{UserID: "u-1", Email: "agent@example.com", Role: "agent"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

// All invalid-credential shapes must be rejected identically.
func TestSessionMiddleware_UniformRejection(t *testing.T) {
	tokens := auth.NewManager(testSecret, time.Hour)
	router := protectedRouter(tokens)

	expired, err := auth.NewManager(testSecret, -time.Minute).Sign(auth.Claims{UserID: "u-1"})
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	wrongKey, err := auth.NewManager("other-secret", time.Hour).Sign(auth.Claims{UserID: "u-1"})
	if err != nil {
		t.Fatalf("sign wrong key: %v", err)
	}

	cases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"NoCookie", nil},
		{"ExpiredToken", &http.Cookie{Name: auth.CookieName, Value: expired}},
		{"TamperedToken", &http.Cookie{Name: auth.CookieName, Value: wrongKey}},
		{"MalformedToken", &http.Cookie{Name: auth.CookieName, Value: "garbage"}},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/secret", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			bodies = append(bodies, rec.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Fatalf("rejection bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestSessionMiddleware_ValidTokenAttachesPrincipal(t *testing.T) {
	tokens := auth.NewManager(testSecret, time.Hour)
	router := protectedRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/secret", nil)
	req.AddCookie(signedCookie(t, tokens))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "agent@example.com" {
		t.Fatalf("principal email = %q", rec.Body.String())
	}
}

func TestRequireSessionPage_RedirectsToLogin(t *testing.T) {
	tokens := auth.NewManager(testSecret, time.Hour)
	router := protectedRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect location = %q, want /login", loc)
	}
}

func TestRequireSessionPage_AllowsAuthenticated(t *testing.T) {
	tokens := auth.NewManager(testSecret, time.Hour)
	router := protectedRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(signedCookie(t, tokens))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dashboard") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	tokens := auth.NewManager(testSecret, time.Hour)
	router := protectedRouter(tokens)

	// signed in: bounced to the dashboard
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(signedCookie(t, tokens))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("redirect location = %q, want /dashboard", loc)
	}

	// signed out: login page renders
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
