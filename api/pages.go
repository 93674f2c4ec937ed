package api

import (
	"embed"
	"html/template"
	"net/http"

	"log/slog"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTmpl = template.Must(template.ParseFS(pageFS, "templates/*.html"))

// PagesHandler serves the small server-rendered shells: the public intake
// form, the login page and the dashboard. The dashboard page itself is thin;
// its data comes from the gated /api/leads endpoints and the event stream.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render page", slog.String("page", name), slog.Any("err", err))
	}
}

func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home.html", nil)
}

func (h *PagesHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", nil)
}

func (h *PagesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := PrincipalFrom(r.Context())
	data := map[string]string{"Email": ""}
	if claims != nil {
		data["Email"] = claims.Email
	}
	h.render(w, "dashboard.html", data)
}
