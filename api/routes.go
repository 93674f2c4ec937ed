package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garnizeh/leaddesk/internal/auth"
	"github.com/garnizeh/leaddesk/internal/config"
	"github.com/garnizeh/leaddesk/internal/db"
	"github.com/garnizeh/leaddesk/internal/pubsub"
	"github.com/garnizeh/leaddesk/internal/repository/sqlite"
	"github.com/garnizeh/leaddesk/internal/storage"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, bus pubsub.Broadcaster, store *storage.LocalStorage) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(MetricsMiddleware)

	// Repository
	repo := sqlite.New(database)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenDuration)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, tokens, cfg.Production())
	leadsHandler := NewLeadsHandler(repo, bus)
	streamHandler := NewStreamHandler(bus)
	uploadHandler := NewUploadHandler(store)
	pages := NewPagesHandler()

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/leads", leadsHandler.Submit).Methods("POST")
	r.HandleFunc("/api/upload", uploadHandler.Upload).Methods("POST")
	r.HandleFunc("/api/sse", streamHandler.Stream).Methods("GET")

	// Protected API routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(SessionMiddleware(tokens))
	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	protected.HandleFunc("/leads", leadsHandler.List).Methods("GET")
	protected.HandleFunc("/leads/{id}", leadsHandler.GetByID).Methods("GET")
	protected.HandleFunc("/leads/{id}/status", leadsHandler.UpdateStatus).Methods("PATCH")

	// Browser pages: the dashboard prefix requires a session, the login page
	// redirects away when one is already present.
	r.HandleFunc("/", pages.Home).Methods("GET")
	r.Handle("/login", RedirectIfAuthenticated(tokens)(http.HandlerFunc(pages.Login))).Methods("GET")

	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(RequireSessionPage(tokens))
	dashboard.HandleFunc("", pages.Dashboard).Methods("GET")
	dashboard.HandleFunc("/", pages.Dashboard).Methods("GET")

	// Stored resumes are served directly off local disk.
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir()))))

	return r
}
