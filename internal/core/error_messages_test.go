package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 127.0.0.1:80: connect: connection refused"),
			wantCode: "SHEET001",
		},
		{
			name:     "status error",
			err:      fmt.Errorf("step: %w", &sheet.StatusError{Op: "Create", Collection: "Items", Code: 500}),
			wantCode: "SHEET002",
		},
		{
			name:     "decode error",
			err:      fmt.Errorf("sheet ReadAll Items: %w: bad", sheet.ErrDecode),
			wantCode: "SHEET003",
		},
		{
			name:     "invalid handle",
			err:      fmt.Errorf("delete: %w", sheet.ErrInvalidHandle),
			wantCode: "SHEET004",
		},
		{
			name:     "stale handle inside step error",
			err:      &StepError{Plan: "update", Step: "verify", Err: &sheet.StaleHandleError{Collection: "Records", Handle: 3, Reason: "gone"}},
			wantCode: "STALE001",
		},
		{
			name:     "busy",
			err:      ErrBusy,
			wantCode: "BUSY001",
		},
		{
			name:     "unknown field",
			err:      &ValidationError{Kind: UnknownField, Field: "Shoe Size"},
			wantCode: "VAL001",
		},
		{
			name:     "read-only field",
			err:      &ValidationError{Kind: ReadOnlyField, Field: "Customer ID"},
			wantCode: "VAL002",
		},
		{
			name:     "required field",
			err:      &ValidationError{Kind: RequiredField, Field: "Address"},
			wantCode: "VAL003",
		},
		{
			name:     "link list",
			err:      &LinkError{Collection: "items", Reason: "duplicate"},
			wantCode: "LINK001",
		},
		{
			name:     "unknown collection",
			err:      fmt.Errorf("%w: invoices", ErrUnknownCollection),
			wantCode: "COL001",
		},
		{
			name:     "not importable",
			err:      fmt.Errorf("%w: customers", ErrNotImportable),
			wantCode: "COL002",
		},
		{
			name:     "cancelled",
			err:      fmt.Errorf("plan: %w", context.Canceled),
			wantCode: "CTX001",
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			wantCode: "CTX002",
		},
		{
			name:     "unknown error",
			err:      errors.New("something odd"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() message is empty")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	tests := []struct {
		name string
		msg  UserMessage
		want string
	}{
		{
			name: "empty message",
			msg:  UserMessage{},
			want: "",
		},
		{
			name: "with action",
			msg:  UserMessage{Message: "Busy", Action: "Wait", Code: "BUSY001"},
			want: "Busy. Wait. (Error: BUSY001)",
		},
		{
			name: "without action",
			msg:  UserMessage{Message: "Broken", Code: "X1"},
			want: "Broken. (Error: X1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUserError(tt.msg); got != tt.want {
				t.Errorf("FormatUserError() = %q, want %q", got, tt.want)
			}
		})
	}
}
