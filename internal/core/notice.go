package core

import "time"

// DefaultNoticeDuration is how long a notice stays visible.
const DefaultNoticeDuration = 3 * time.Second

// NoticeKind distinguishes success from failure notices.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the single transient message shown after an operation.
type Notice struct {
	Kind           NoticeKind `json:"kind"`
	Text           string     `json:"text"`
	Code           string     `json:"code,omitempty"`
	Action         string     `json:"action,omitempty"`
	DismissAfterMS int64      `json:"dismissAfterMs"`
}

// DismissAfter returns the display duration.
func (n Notice) DismissAfter() time.Duration {
	return time.Duration(n.DismissAfterMS) * time.Millisecond
}

func (s *Service) successNotice(text string) Notice {
	return Notice{
		Kind:           NoticeSuccess,
		Text:           text,
		DismissAfterMS: s.noticeDuration.Milliseconds(),
	}
}

// failureNotice keeps the operation's fixed failure text and attaches the
// mapped code and action.
func (s *Service) failureNotice(text string, err error) Notice {
	msg := MapError(err)
	return Notice{
		Kind:           NoticeError,
		Text:           text,
		Code:           msg.Code,
		Action:         msg.Action,
		DismissAfterMS: s.noticeDuration.Milliseconds(),
	}
}
