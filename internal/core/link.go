package core

import (
	"fmt"
	"strings"
)

// LinkError reports a malformed link list.
type LinkError struct {
	Collection string
	Reason     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("invalid link list for %s: %s", e.Collection, e.Reason)
}

// LinkList is the typed form of a parent's comma-joined child identifier
// field. Collection names the collection the identifiers live in.
type LinkList struct {
	Collection string   `json:"collection"`
	IDs        []string `json:"ids"`
}

// ParseLinkList splits raw on commas, trims every entry and drops empty ones.
// Repeated identifiers are kept; Validate rejects them.
func ParseLinkList(collection, raw string) LinkList {
	l := LinkList{Collection: collection}
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			l.IDs = append(l.IDs, id)
		}
	}
	return l
}

// Validate rejects lists that cannot round-trip through the joined field.
func (l LinkList) Validate() error {
	if l.Collection == "" {
		return &LinkError{Reason: "owning collection is not set"}
	}
	seen := make(map[string]bool, len(l.IDs))
	for _, id := range l.IDs {
		switch {
		case strings.TrimSpace(id) == "":
			return &LinkError{Collection: l.Collection, Reason: "empty identifier"}
		case strings.TrimSpace(id) != id:
			return &LinkError{Collection: l.Collection, Reason: fmt.Sprintf("identifier %q has surrounding whitespace", id)}
		case strings.Contains(id, ","):
			return &LinkError{Collection: l.Collection, Reason: fmt.Sprintf("identifier %q contains a comma", id)}
		case seen[id]:
			return &LinkError{Collection: l.Collection, Reason: fmt.Sprintf("duplicate identifier %q", id)}
		}
		seen[id] = true
	}
	return nil
}

// Contains reports whether id is listed.
func (l LinkList) Contains(id string) bool {
	for _, v := range l.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Len returns the number of identifiers.
func (l LinkList) Len() int {
	return len(l.IDs)
}

// String renders the list as stored in the parent row.
func (l LinkList) String() string {
	return strings.Join(l.IDs, ",")
}
