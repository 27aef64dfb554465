package web

// This file contains shared utilities and helper functions used across handlers.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// handleParam parses the {handle} URL parameter. Handles start at 1.
func handleParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "handle")
	h, err := strconv.Atoi(raw)
	if err != nil || h < 1 {
		return 0, errors.New("row must be a positive number")
	}
	return h, nil
}

// decodeJSON reads a JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// recordRef identifies a record as the client last read it.
type recordRef struct {
	Rows     int               `json:"rows"`
	Original map[string]string `json:"original"`
}

func (ref recordRef) record(handle int) sheet.Record {
	fields := ref.Original
	if fields == nil {
		fields = map[string]string{}
	}
	return sheet.Record{Handle: handle, Rows: ref.Rows, Fields: fields}
}
