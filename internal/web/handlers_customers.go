package web

import (
	"net/http"

	"github.com/JonMunkholm/sheetsync/internal/core"
	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// handleCreateCustomer saves a customer and its line items.
func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer core.CustomerForm `json:"customer"`
		Items    []core.LineItem   `json:"items"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.CreateCustomer(ctx, req.Customer, req.Items)
	s.respondMutation(w, r, result, err, http.StatusCreated)
}

// handleQuote returns the line amounts and total for the form's items.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []core.LineItem `json:"items"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, core.QuoteItems(req.Items))
}

// handleCustomerItems returns a customer and the items it links to.
func (s *Server) handleCustomerItems(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}

	ctx := r.Context()
	customer, err := s.service.Record(ctx, core.CustomersKey, handle)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	items, err := s.service.CustomerItems(ctx, customer)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Customer sheet.Record   `json:"customer"`
		Items    []sheet.Record `json:"items"`
	}{customer, items})
}

// handleDeleteCustomer removes a customer and its linked items.
func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}

	var ref recordRef
	if err := decodeJSON(w, r, &ref); err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.DeleteCustomer(ctx, ref.record(handle))
	s.respondMutation(w, r, result, err, http.StatusOK)
}
