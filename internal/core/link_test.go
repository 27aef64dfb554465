package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseLinkList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"ITEM-1", []string{"ITEM-1"}},
		{"ITEM-1,ITEM-2", []string{"ITEM-1", "ITEM-2"}},
		{" ITEM-1 , ITEM-2 ", []string{"ITEM-1", "ITEM-2"}},
		{"ITEM-1,,ITEM-2,", []string{"ITEM-1", "ITEM-2"}},
		{" , ", nil},
	}

	for _, tt := range tests {
		got := ParseLinkList("items", tt.raw)
		if !reflect.DeepEqual(got.IDs, tt.want) {
			t.Errorf("ParseLinkList(%q).IDs = %q, want %q", tt.raw, got.IDs, tt.want)
		}
		if got.Collection != "items" {
			t.Errorf("ParseLinkList(%q).Collection = %q", tt.raw, got.Collection)
		}
	}
}

func TestLinkList_Validate(t *testing.T) {
	tests := []struct {
		name    string
		list    LinkList
		wantErr bool
	}{
		{"empty list", LinkList{Collection: "items"}, false},
		{"valid", LinkList{Collection: "items", IDs: []string{"A", "B"}}, false},
		{"no collection", LinkList{IDs: []string{"A"}}, true},
		{"blank id", LinkList{Collection: "items", IDs: []string{" "}}, true},
		{"padded id", LinkList{Collection: "items", IDs: []string{" A"}}, true},
		{"comma", LinkList{Collection: "items", IDs: []string{"A,B"}}, true},
		{"duplicate", LinkList{Collection: "items", IDs: []string{"A", "A"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.list.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var linkErr *LinkError
			if err != nil && !errors.As(err, &linkErr) {
				t.Errorf("Validate() error type = %T, want *LinkError", err)
			}
		})
	}
}

func TestLinkList_RoundTrip(t *testing.T) {
	l := LinkList{Collection: "items", IDs: []string{"ITEM-1-0", "ITEM-1-1"}}
	if got := l.String(); got != "ITEM-1-0,ITEM-1-1" {
		t.Errorf("String() = %q", got)
	}
	back := ParseLinkList("items", l.String())
	if !reflect.DeepEqual(back, l) {
		t.Errorf("round trip = %+v, want %+v", back, l)
	}
	if !back.Contains("ITEM-1-1") || back.Contains("ITEM-1") {
		t.Error("Contains() mismatch")
	}
}
