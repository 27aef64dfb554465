package core

import (
	"testing"
	"time"
)

func TestLineItem_Amount(t *testing.T) {
	tests := []struct {
		qty, rate string
		want      float64
	}{
		{"2", "25", 50},
		{"1.5", "10", 15},
		{" 3 ", "4", 12},
		{"", "10", 0},
		{"abc", "10", 0},
		{"2", "x", 0},
		{"NaN", "2", 0},
		{"Inf", "2", 0},
		{"-1", "5", -5},
	}

	for _, tt := range tests {
		item := LineItem{Qty: tt.qty, Rate: tt.rate}
		if got := item.Amount(); got != tt.want {
			t.Errorf("LineItem{Qty: %q, Rate: %q}.Amount() = %v, want %v", tt.qty, tt.rate, got, tt.want)
		}
	}
}

func TestQuoteItems(t *testing.T) {
	q := QuoteItems([]LineItem{
		{Code: "A", Qty: "2", Rate: "25"},
		{Code: "B", Qty: "x", Rate: "100"},
		{Code: "C", Qty: "1", Rate: "0.5"},
	})

	if len(q.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(q.Lines))
	}
	if q.Lines[0].Amount != 50 || q.Lines[1].Amount != 0 || q.Lines[2].Amount != 0.5 {
		t.Errorf("amounts = %v, %v, %v", q.Lines[0].Amount, q.Lines[1].Amount, q.Lines[2].Amount)
	}
	if q.Total != 50.5 {
		t.Errorf("Total = %v, want 50.5", q.Total)
	}
	if got := FormatAmount(q.Total); got != "50.50" {
		t.Errorf("FormatAmount() = %q, want %q", got, "50.50")
	}
}

func TestIDGenerator(t *testing.T) {
	ticks := []int64{1700000000000, 1700000000003, 1700000000007}
	i := 0
	gen := IDGenerator{Now: func() time.Time {
		ms := ticks[i]
		i++
		return time.UnixMilli(ms)
	}}

	if got := gen.Parent("CUST"); got != "CUST-1700000000000" {
		t.Errorf("Parent() = %q", got)
	}
	if got := gen.Child("ITEM", 0); got != "ITEM-1700000000003-0" {
		t.Errorf("Child(0) = %q", got)
	}
	if got := gen.Child("ITEM", 1); got != "ITEM-1700000000007-1" {
		t.Errorf("Child(1) = %q", got)
	}
}
