package core

import (
	"strconv"
	"time"
)

// IDGenerator builds timestamp-based identifiers before the store assigns any
// identity of its own.
type IDGenerator struct {
	Now func() time.Time
}

func (g IDGenerator) millis() int64 {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return now().UnixMilli()
}

// Parent returns "<prefix>-<unix millis>".
func (g IDGenerator) Parent(prefix string) string {
	return prefix + "-" + strconv.FormatInt(g.millis(), 10)
}

// Child returns "<prefix>-<unix millis>-<index>". The clock is read on every call.
func (g IDGenerator) Child(prefix string, index int) string {
	return prefix + "-" + strconv.FormatInt(g.millis(), 10) + "-" + strconv.Itoa(index)
}
