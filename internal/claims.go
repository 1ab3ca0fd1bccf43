package internal

import (
	"errors"
	"net/http"
	"strconv"

	"lostfound-api/internal/assets"
	"lostfound-api/internal/claims"
	"lostfound-api/internal/models"

	"github.com/go-chi/chi/v5"
)

// listClaimedItems handles GET /api/claimed-items.
func (s *Server) listClaimedItems(w http.ResponseWriter, r *http.Request) {
	records, err := s.Ledger.List(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list claimed items")
		return
	}
	if records == nil {
		records = []models.ClaimedItem{}
	}
	writeJSON(w, http.StatusOK, records)
}

// claimItem handles POST /api/claim/{id}: an owner claims an item with
// identity and photographic evidence, moving it from the open pool to the
// claim ledger. A lost race and an unknown id are the same 404 to the
// caller.
func (s *Server) claimItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	photoRef, err := s.bindPhoto(r, assets.NamespaceClaimed)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	rec, err := s.Claims.Transition(r.Context(), id,
		r.FormValue("claimerStudent"),
		r.FormValue("claimerName"),
		photoRef,
	)
	if errors.Is(err, claims.ErrAlreadyClaimed) {
		s.Metrics.claimConflicts.Inc()
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	var orphan *claims.OrphanedClaimError
	if errors.As(err, &orphan) {
		s.Metrics.orphanedClaims.Inc()
		jsonError(w, http.StatusInternalServerError, "claim could not be recorded")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to claim item")
		return
	}

	s.Metrics.itemsClaimed.Inc()
	writeJSON(w, http.StatusOK, rec)
}
