package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/sheetsync/internal/core"
)

// WithRequestMetadata adds IP and User-Agent to context for the audit trail.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // Already processed by chi middleware.RealIP
	return core.ContextWithRequestMeta(ctx, ip, r.Header.Get("User-Agent"))
}
