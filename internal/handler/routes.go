package handler

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
)

//go:embed static
var staticFiles embed.FS

// NewRouter wires the public, admin and static routes
func NewRouter(h *Handler, auth mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/api/properties", h.ListProperties).Methods("GET")
	r.HandleFunc("/api/properties/{id:[0-9]+}", h.GetProperty).Methods("GET")
	r.HandleFunc("/api/trades", h.ListTrades).Methods("GET")
	r.HandleFunc("/api/regions", h.ListRegions).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Protected routes
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth)
	admin.HandleFunc("/ingest", h.TriggerIngest).Methods("POST")

	static, _ := fs.Sub(staticFiles, "static")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return r
}
