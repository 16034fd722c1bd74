package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"showlib/internal/database"
	"showlib/models"
	"showlib/services/shows"
)

// ShowsHandler exposes the show catalog as a JSON API.
type ShowsHandler struct {
	shows *shows.Service
}

// NewShowsHandler creates a new shows handler.
func NewShowsHandler(showsSvc *shows.Service) *ShowsHandler {
	return &ShowsHandler{shows: showsSvc}
}

// Register attaches the show routes to the router.
func (h *ShowsHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/shows", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/shows", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/shows/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/shows/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/shows/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}

// List returns all shows, optionally filtered by title substring and status.
func (h *ShowsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := database.ShowFilter{
		Title:  strings.TrimSpace(r.URL.Query().Get("title")),
		Status: r.URL.Query().Get("status"),
	}

	result, err := h.shows.List(filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get returns a single show by id.
func (h *ShowsHandler) Get(w http.ResponseWriter, r *http.Request) {
	show, err := h.shows.Get(pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, show)
}

// Create adds a new show to the catalog.
func (h *ShowsHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	id, err := h.shows.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "TV show created successfully",
	})
}

// Update overwrites an existing show.
func (h *ShowsHandler) Update(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	if err := h.shows.Update(r.Context(), pathID(r), input); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "TV show updated successfully",
	})
}

// Delete removes a show.
func (h *ShowsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shows.Delete(pathID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "TV show deleted successfully",
	})
}

func decodeInput(w http.ResponseWriter, r *http.Request) (models.ShowInput, bool) {
	var input models.ShowInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return models.ShowInput{}, false
	}
	return input, true
}

func pathID(r *http.Request) int64 {
	// The route pattern constrains {id} to digits.
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// writeError maps service errors to HTTP statuses: validation failures are
// 400, missing records 404, everything else a server fault. Server faults
// get a fixed message; the detail stays in the log.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var verr *shows.VerificationError
	switch {
	case errors.Is(err, shows.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shows.ErrMissingField),
		errors.Is(err, shows.ErrInvalidURL),
		errors.Is(err, shows.ErrDuplicateTitle),
		errors.As(err, &verr):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Printf("[shows] request failed: %v", err)
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
