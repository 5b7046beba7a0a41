package composables

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/esalabs/controltower/pkg/constants"
)

const DefaultActor = "admin"

type Paginated struct {
	Limit  int
	Offset int
	Page   int
}

// UsePaginated reads limit/offset query parameters, clamping to sane bounds.
func UsePaginated(r *http.Request, defaultLimit, maxLimit int) Paginated {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	page := 1
	if limit > 0 {
		page = offset/limit + 1
	}
	return Paginated{Limit: limit, Offset: offset, Page: page}
}

func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger or a discard-free default.
func UseLogger(ctx context.Context) logrus.FieldLogger {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger.(logrus.FieldLogger)
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

// UseActor returns the acting reviewer identity set by the auth gate.
func UseActor(ctx context.Context) string {
	actor := ctx.Value(constants.ActorKey)
	if actor == nil {
		return DefaultActor
	}
	if s, ok := actor.(string); ok && s != "" {
		return s
	}
	return DefaultActor
}
