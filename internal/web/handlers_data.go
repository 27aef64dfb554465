package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/sheetsync/internal/core"
	"github.com/JonMunkholm/sheetsync/internal/logging"
)

// handleExport downloads a collection as CSV or Excel.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")

	format, err := core.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}

	// Buffered so a failed read can still be reported with a status code.
	var buf bytes.Buffer
	if err := s.service.Export(r.Context(), key, format, &buf); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", key, timestamp, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		// Can't change status code after writing, just log
		logging.FromContext(r.Context()).Error("export write failed", "collection", key, "error", err)
	}
}

// handleImport appends the rows of an uploaded workbook to a collection.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")
	maxSize := s.cfg.Server.MaxImportSize

	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondBadRequest(w, r, fmt.Sprintf("file exceeds %d bytes", maxSize))
			return
		}
		s.respondBadRequest(w, r, "invalid upload form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondBadRequest(w, r, "no file provided")
		return
	}
	defer file.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.ImportXLSX(ctx, key, file)
	s.respondMutation(w, r, result, err, http.StatusOK)
}

// handleAuditLog returns the most recent audit entries, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 50)

	entries, err := s.service.RecentAudit(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// handleHealth reports liveness and the mutations in progress.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"mutations": s.service.Guard().Status(),
	})
}
