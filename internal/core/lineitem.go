package core

import (
	"math"
	"strconv"
	"strings"
)

// LineItem is one row of the item table on the customer form.
// Qty and Rate hold raw form input.
type LineItem struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Qty         string `json:"qty"`
	Rate        string `json:"rate"`
}

// Amount returns qty × rate. Non-numeric input counts as zero.
func (li LineItem) Amount() float64 {
	return ParseNumber(li.Qty) * ParseNumber(li.Rate)
}

// ParseNumber parses form input as a float, returning 0 for blank,
// non-numeric or non-finite values.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// QuoteLine is a line item with its computed amount.
type QuoteLine struct {
	LineItem
	Amount float64 `json:"amount"`
}

// Quote holds the computed amounts of a form's items and their total.
type Quote struct {
	Lines []QuoteLine `json:"lines"`
	Total float64     `json:"total"`
}

// QuoteItems computes every line amount and the running total.
func QuoteItems(items []LineItem) Quote {
	q := Quote{Lines: make([]QuoteLine, len(items))}
	for i, item := range items {
		amount := item.Amount()
		q.Lines[i] = QuoteLine{LineItem: item, Amount: amount}
		q.Total += amount
	}
	return q
}

// FormatAmount renders an amount with two decimals, as shown on the form.
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
