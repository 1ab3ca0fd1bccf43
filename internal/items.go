package internal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"lostfound-api/internal/assets"
	"lostfound-api/internal/auth"
	"lostfound-api/internal/models"
	"lostfound-api/internal/store"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps multipart request bodies, photo included.
const maxUploadBytes = 10 << 20

// submitItem handles POST /api/submit: a finder registers a found item,
// optionally with a photo.
func (s *Server) submitItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	photoRef, err := s.bindPhoto(r, assets.NamespaceSubmitted)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	item, err := s.Items.Create(r.Context(), store.NewItem{
		StudentNumber: r.FormValue("studentNumber"),
		Password:      r.FormValue("password"),
		Name:          r.FormValue("itemName"),
		Category:      r.FormValue("category"),
		Location:      r.FormValue("location"),
		Photo:         photoRef,
	})
	if errors.Is(err, store.ErrMissingField) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save item")
		return
	}

	s.Metrics.itemsSubmitted.Inc()
	writeJSON(w, http.StatusOK, item)
}

// listItems handles GET /api/items. The full open pool is returned in
// insertion order; q/category/location query params narrow it server-side.
func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.Items.List(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	items = filterItems(items, parseItemFilter(r))
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// updateItem handles PUT /api/items/{id}: the submitter edits the
// descriptive fields of an item. When the body carries the credential pair
// it is verified first; a mismatch is a normal response with a negative
// result, not an error status.
func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var in models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if in.StudentNumber != "" || in.Password != "" {
		item, err := s.Items.FindByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Item not found")
			return
		}
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to load item")
			return
		}
		if !auth.Verify(item, in.StudentNumber, in.Password) {
			writeJSON(w, http.StatusOK, map[string]bool{"success": false, "verified": false})
			return
		}
	}

	err = s.Items.Update(r.Context(), id, store.ItemUpdate{
		Name:     in.Name,
		Category: in.Category,
		Location: in.Location,
	})
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// verifyEdit handles POST /api/items/{id}/verify: the edit-authorization
// step on its own, so the UI can gate the edit form.
func (s *Server) verifyEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var in models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := s.Items.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": auth.Verify(item, in.StudentNumber, in.Password)})
}

// bindPhoto stores the optional "photo" form file under the given namespace
// and returns its asset reference, or "" when no photo was uploaded.
func (s *Server) bindPhoto(r *http.Request, namespace string) (string, error) {
	file, header, err := r.FormFile("photo")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return s.Assets.Bind(namespace, raw, header.Filename)
}
