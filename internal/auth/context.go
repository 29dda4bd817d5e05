package auth

import (
	"context"

	"campusgear/internal/models"
)

type ctxKey string

const userKey ctxKey = "userClaims"

// Claims is the authenticated identity handed to every core operation.
// Handlers take it from the request context; service code receives it as an
// explicit argument and never reads ambient state.
type Claims struct {
	Subject string
	Role    string
	JWTID   string
}

func (c Claims) IsStaff() bool {
	return models.IsStaffRole(c.Role)
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
