package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// lookupStudent handles GET /api/students/{number}: resolves a student
// number to the full name on the roster.
func (s *Server) lookupStudent(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	name, ok := s.Roster.Lookup(number)
	if !ok {
		jsonError(w, http.StatusNotFound, "Student not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"studentNumber": number,
		"fullName":      name,
	})
}
