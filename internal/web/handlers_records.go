package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListCollections returns the configured collections.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Collections())
}

// handleList returns the records of a collection matching ?search=.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")

	result, err := s.service.List(r.Context(), key, r.URL.Query().Get("search"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleRecord returns one record by handle.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")
	handle, err := handleParam(r)
	if err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}

	rec, err := s.service.Record(r.Context(), key, handle)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleUpdate overwrites one row. The body carries the record as the client
// read it and the edited fields.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")
	handle, err := handleParam(r)
	if err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}

	var req struct {
		recordRef
		Fields map[string]string `json:"fields"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}
	if len(req.Fields) == 0 {
		s.respondBadRequest(w, r, "no fields to update")
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.Update(ctx, key, req.record(handle), req.Fields)
	s.respondMutation(w, r, result, err, http.StatusOK)
}
