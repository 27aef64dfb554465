package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted as JSON for API calls and as a full page for browsers
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusFor(err))
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in appropriate format for the client

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/sheetsync/internal/core"
	"github.com/JonMunkholm/sheetsync/internal/sheet"
	"github.com/JonMunkholm/sheetsync/internal/web/views"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// mutationResponse is the body of every create, update, delete and import
// call. The error fields are present only when the plan failed.
type mutationResponse struct {
	core.MutationResult
	*ErrorResponse
}

// codeBadRequest marks requests rejected before they reach the service.
const codeBadRequest = "REQ001"

func newErrorResponse(msg core.UserMessage) *ErrorResponse {
	return &ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	var (
		stale      *sheet.StaleHandleError
		validation *core.ValidationError
		link       *core.LinkError
		status     *sheet.StatusError
		netErr     net.Error
	)

	switch {
	case errors.Is(err, core.ErrBusy), errors.As(err, &stale):
		return http.StatusConflict
	case errors.As(err, &validation), errors.As(err, &link),
		errors.Is(err, sheet.ErrInvalidHandle), errors.Is(err, core.ErrNotImportable):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnknownCollection):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &status), errors.Is(err, sheet.ErrDecode), errors.As(err, &netErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns JSON or an HTML page
// depending on the request.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	// Get request ID for correlation
	requestID := middleware.GetReqID(r.Context())

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", requestID,
	)

	if wantsJSON(r) {
		writeJSON(w, statusCode, newErrorResponse(userMsg))
		return
	}
	s.renderErrorPage(w, r, userMsg, statusCode)
}

// respondBadRequest rejects a malformed request.
func (s *Server) respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	slog.Warn("bad request",
		"path", r.URL.Path,
		"method", r.Method,
		"reason", message,
		"request_id", middleware.GetReqID(r.Context()),
	)

	msg := core.UserMessage{
		Message: message,
		Action:  "Check the request and try again",
		Code:    codeBadRequest,
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusBadRequest, newErrorResponse(msg))
		return
	}
	s.renderErrorPage(w, r, msg, http.StatusBadRequest)
}

// respondMutation writes the outcome of a mutation. Failures keep the plan
// report so the client can show which steps completed.
func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, res core.MutationResult, err error, okStatus int) {
	if err == nil {
		writeJSON(w, okStatus, mutationResponse{MutationResult: res})
		return
	}

	statusCode := statusFor(err)
	userMsg := core.MapError(err)
	slog.Warn("mutation failed",
		"path", r.URL.Path,
		"status", statusCode,
		"code", userMsg.Code,
		"plan_id", res.Plan.ID,
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeJSON(w, statusCode, mutationResponse{
		MutationResult: res,
		ErrorResponse:  newErrorResponse(userMsg),
	})
}

// renderErrorPage writes a full HTML page holding the error alert.
func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	page := views.Page(s.shell("Error", ""), views.ErrorAlert(msg.Message, msg.Action, msg.Code))
	if err := page.Render(r.Context(), w); err != nil {
		slog.Error("render error page", "error", err)
	}
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
