// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_catalog/internal/app"
	"hotel_catalog/internal/domain"
	"hotel_catalog/internal/shared"
)

// Rebuilder rebuilds the served catalog from the suppliers.
type Rebuilder interface {
	FetchAndMerge(ctx context.Context) (*app.Catalog, error)
}

type Handlers struct {
	Q       *app.QueryService
	Rebuild Rebuilder
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type refreshResponse struct {
	RunID   string    `json:"run_id"`
	Hotels  int       `json:"hotels"`
	BuiltAt time.Time `json:"built_at"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	if h.Rebuild != nil {
		s.mux.Post("/v1/catalog/refresh", h.refresh)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeQueryError maps query failures onto problem responses.
func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCatalogNotReady):
		writeProblem(w, http.StatusServiceUnavailable, "Catalog Not Ready", "no catalog has been built yet")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
	default:
		log.Error().Err(err).Msg("query failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSONWithETag answers 304 when the client already holds this exact body.
func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dests, err := shared.ParseDestinationIDs(q.Get("destination_ids"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid destination_ids", err.Error())
		return
	}
	query := domain.HotelQuery{HotelIDs: shared.ParseHotelIDs(q.Get("hotel_ids")), DestinationIDs: dests}

	out, err := h.Q.Find(r.Context(), query)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSONWithETag(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Q.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSONWithETag(w, r, resp)
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := h.Rebuild.FetchAndMerge(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("catalog refresh failed; previous catalog kept")
		switch {
		case errors.Is(err, domain.ErrTransport):
			writeProblem(w, http.StatusBadGateway, "Supplier Unavailable", err.Error())
		case errors.Is(err, domain.ErrMapping):
			writeProblem(w, http.StatusUnprocessableEntity, "Supplier Record Invalid", err.Error())
		default:
			writeProblem(w, http.StatusInternalServerError, "Refresh Failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(refreshResponse{RunID: c.RunID(), Hotels: c.Len(), BuiltAt: c.BuiltAt()}); err != nil {
		log.Error().Err(err).Msg("failed to write refresh body")
	}
}
