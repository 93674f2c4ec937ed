package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/garnizeh/leaddesk/internal/auth"
	"github.com/garnizeh/leaddesk/pkg/repository"
)

type AuthHandler struct {
	userRepo     repository.UserRepo
	tokens       *auth.Manager
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
// secureCookie should be true in production so the session cookie is only
// sent over TLS.
func NewAuthHandler(ur repository.UserRepo, tokens *auth.Manager, secureCookie bool) *AuthHandler {
	return &AuthHandler{userRepo: ur, tokens: tokens, secureCookie: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("login lookup", slog.Any("err", err))
		writeError(w, "login failed", http.StatusInternalServerError)
		return
	}

	// One generic failure for both unknown email and wrong password so the
	// endpoint cannot be used to enumerate accounts.
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Sign(auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		logger.Error("sign token", slog.Any("err", err))
		writeError(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TokenDuration().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

// Me returns the authenticated principal. Only reachable behind the session
// middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := PrincipalFrom(r.Context())
	if claims == nil {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]string{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
	}, http.StatusOK)
}
