package core

// # Error Codes Reference
//
// Every failed operation is surfaced to the user as one notice. The codes
// below let users quote an error to support staff.
//
// # Sheet Errors (SHEET001-SHEET099)
//
//	SHEET001 - Store unreachable: The spreadsheet service could not be reached
//	           Action: Check your connection and try again
//	           Matches: transport errors, "connection refused", "no such host"
//
//	SHEET002 - Store rejected request: The spreadsheet service returned an error
//	           Action: Try again; if it keeps failing contact support
//	           Matches: *sheet.StatusError
//
//	SHEET003 - Unreadable data: The spreadsheet returned data in an unexpected format
//	           Action: Check that the sheet name and spreadsheet ID are correct
//	           Matches: sheet.ErrDecode
//
//	SHEET004 - Invalid row: The row reference is not valid
//	           Action: Reload the list and try again
//	           Matches: sheet.ErrInvalidHandle
//
// # Concurrency Errors
//
//	STALE001 - Stale row: The list changed since it was loaded
//	           Action: Reload the list and try again
//	           Matches: *sheet.StaleHandleError
//
//	BUSY001  - Busy: Another change to this list is still running
//	           Action: Wait for it to finish, then try again
//	           Matches: ErrBusy
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Unknown field: The form contains a field the sheet does not have
//	VAL002 - Read-only field: Identifier and link fields cannot be edited
//	VAL003 - Required field: A required field is empty
//	LINK001 - Broken link list: The item identifier list is malformed
//	COL001 - Unknown list: The requested collection is not configured
//	COL002 - Import refused: The collection does not accept imports
//
// # Request Errors
//
//	CTX001 - Request cancelled
//	CTX002 - Request timed out
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// Typed errors are matched first with errors.Is/As. Anything else falls back
// to case-insensitive substring patterns; the first matching pattern wins.

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgUnreachable = UserMessage{
		Message: "The spreadsheet service could not be reached",
		Action:  "Check your connection and try again",
		Code:    "SHEET001",
	}
	msgRejected = UserMessage{
		Message: "The spreadsheet service returned an error",
		Action:  "Try again; if it keeps failing contact support",
		Code:    "SHEET002",
	}
	msgDecode = UserMessage{
		Message: "The spreadsheet returned data in an unexpected format",
		Action:  "Check that the sheet name and spreadsheet ID are correct",
		Code:    "SHEET003",
	}
	msgInvalidHandle = UserMessage{
		Message: "The row reference is not valid",
		Action:  "Reload the list and try again",
		Code:    "SHEET004",
	}
	msgStale = UserMessage{
		Message: "The list changed since it was loaded",
		Action:  "Reload the list and try again",
		Code:    "STALE001",
	}
	msgBusy = UserMessage{
		Message: "Another change to this list is still running",
		Action:  "Wait for it to finish, then try again",
		Code:    "BUSY001",
	}
	msgLink = UserMessage{
		Message: "The item identifier list is malformed",
		Action:  "Fix the Item ID's field in the sheet",
		Code:    "LINK001",
	}
	msgUnknownCollection = UserMessage{
		Message: "This list is not configured",
		Action:  "Verify the list name is correct",
		Code:    "COL001",
	}
	msgNotImportable = UserMessage{
		Message: "This list does not accept imports",
		Action:  "Import into the Students list instead",
		Code:    "COL002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "CTX001",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Check your connection and try again",
		Code:    "CTX002",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are checked after typed errors. Order matters.
var errorPatterns = []errorPattern{
	{pattern: "connection refused", msg: msgUnreachable},
	{pattern: "no such host", msg: msgUnreachable},
	{pattern: "connection reset", msg: msgUnreachable},
	{pattern: "timeout", msg: msgTimeout},
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for nil errors.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		stale      *sheet.StaleHandleError
		status     *sheet.StatusError
		validation *ValidationError
		link       *LinkError
		netErr     net.Error
	)

	switch {
	case errors.Is(err, ErrBusy):
		return msgBusy
	case errors.As(err, &stale):
		return msgStale
	case errors.As(err, &validation):
		return validation.UserMessage()
	case errors.As(err, &link):
		return msgLink
	case errors.Is(err, ErrUnknownCollection):
		return msgUnknownCollection
	case errors.Is(err, ErrNotImportable):
		return msgNotImportable
	case errors.Is(err, sheet.ErrInvalidHandle):
		return msgInvalidHandle
	case errors.Is(err, sheet.ErrDecode):
		return msgDecode
	case errors.As(err, &status):
		return msgRejected
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return msgTimeout
		}
		return msgUnreachable
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}
	return msgUnknown
}

// FormatUserError formats a UserMessage for display.
func FormatUserError(msg UserMessage) string {
	if msg.Code == "" {
		return ""
	}
	if msg.Action != "" {
		return fmt.Sprintf("%s. %s. (Error: %s)", msg.Message, msg.Action, msg.Code)
	}
	return fmt.Sprintf("%s. (Error: %s)", msg.Message, msg.Code)
}

// ValidationKind classifies a ValidationError.
type ValidationKind int

const (
	UnknownField ValidationKind = iota
	ReadOnlyField
	RequiredField
)

// ValidationError reports a form field the operation cannot accept.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ReadOnlyField:
		return fmt.Sprintf("read-only field: %s", e.Field)
	case RequiredField:
		return fmt.Sprintf("required field is empty: %s", e.Field)
	default:
		return fmt.Sprintf("unknown field: %s", e.Field)
	}
}

// UserMessage returns the notice text for the error.
func (e *ValidationError) UserMessage() UserMessage {
	switch e.Kind {
	case ReadOnlyField:
		return UserMessage{
			Message: fmt.Sprintf("%q cannot be edited", e.Field),
			Action:  "Leave identifier and link fields unchanged",
			Code:    "VAL002",
		}
	case RequiredField:
		return UserMessage{
			Message: fmt.Sprintf("%q is required", e.Field),
			Action:  "Fill in every required field",
			Code:    "VAL003",
		}
	default:
		return UserMessage{
			Message: fmt.Sprintf("%q is not a column of this sheet", e.Field),
			Action:  "Reload the form and try again",
			Code:    "VAL001",
		}
	}
}
