package api

import (
	"context"

	"frontdesk/internal/auth"
)

type ctxKey string

const ctxKeySession ctxKey = "staff_session"

func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

func SessionFromContext(ctx context.Context) *auth.Session {
	v := ctx.Value(ctxKeySession)
	if v == nil {
		return nil
	}
	s, _ := v.(*auth.Session)
	return s
}
