package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// ListResult is one filtered view of a collection.
type ListResult struct {
	Collection CollectionInfo `json:"collection"`
	Columns    []string       `json:"columns"`
	Records    []sheet.Record `json:"records"`
	Total      int            `json:"total"`
	Search     string         `json:"search,omitempty"`
}

// Filter keeps the records whose joined values contain term, ignoring case.
// An empty term keeps every record.
func Filter(records []sheet.Record, term string) []sheet.Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	out := make([]sheet.Record, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.SearchText()), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// List returns the collection's records matching term.
func (s *Service) List(ctx context.Context, key, term string) (*ListResult, error) {
	def, store, err := s.Definition(key)
	if err != nil {
		return nil, err
	}
	snap, err := s.listSnapshot(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", key, err)
	}

	records := Filter(snap.Records, term)
	if records == nil {
		records = []sheet.Record{}
	}
	return &ListResult{
		Collection: def.Info,
		Columns:    def.Display(snap.Headers),
		Records:    records,
		Total:      snap.Len(),
		Search:     term,
	}, nil
}

// Record returns the row at handle from a fresh read.
func (s *Service) Record(ctx context.Context, key string, handle int) (sheet.Record, error) {
	_, store, err := s.Definition(key)
	if err != nil {
		return sheet.Record{}, err
	}
	snap, err := fresh(ctx, store)
	if err != nil {
		return sheet.Record{}, fmt.Errorf("read %s: %w", key, err)
	}
	rec, ok := snap.At(handle)
	if !ok {
		return sheet.Record{}, fmt.Errorf("%s row %d: %w", key, handle, sheet.ErrInvalidHandle)
	}
	return rec, nil
}

// CustomerItems returns the child rows listed in parent's link field, in
// sheet order.
func (s *Service) CustomerItems(ctx context.Context, parent sheet.Record) ([]sheet.Record, error) {
	def, _, err := s.Definition(CustomersKey)
	if err != nil {
		return nil, err
	}
	childDef, childStore, err := s.Definition(def.ChildKey)
	if err != nil {
		return nil, err
	}

	links := ParseLinkList(def.ChildKey, parent.Value(def.LinkField))
	if links.Len() == 0 {
		return []sheet.Record{}, nil
	}

	snap, err := s.listSnapshot(ctx, childStore)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", def.ChildKey, err)
	}

	items := make([]sheet.Record, 0, links.Len())
	for _, rec := range snap.Records {
		if links.Contains(rec.Value(childDef.KeyField)) {
			items = append(items, rec)
		}
	}
	return items, nil
}
