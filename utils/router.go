package utils

import (
	"net/http"

	"github.com/gorilla/mux"
)

// CORS allows cross-origin requests from any origin. The catalog is a
// personal single-user service; its frontend may be served from a different
// host or port than the API.
//
// It must wrap the router from the outside rather than being registered
// with Use: mux only runs Use middlewares for matched routes, so an OPTIONS
// preflight for a POST-only path would otherwise fall through to a bare 405
// with no CORS headers.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter constructs the base mux router with a health endpoint. Wrap the
// result with CORS before serving.
func NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	return r
}
