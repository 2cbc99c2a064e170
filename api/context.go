package api

import (
	"context"
)

type keyType string

const adminKey keyType = "admin"

// ctxWithAdmin adds the authenticated admin's username to the context
func ctxWithAdmin(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, adminKey, username)
}

// ctxGetAdmin returns the authenticated admin, or "" on public routes
func ctxGetAdmin(ctx context.Context) string {
	username, _ := ctx.Value(adminKey).(string)
	return username
}
