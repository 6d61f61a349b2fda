package auth

import "context"

type ctxTokenKey struct{}

// ContextWithToken embeds the session token into the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext extracts the session token from the context
func TokenFromContext(ctx context.Context) (*Token, bool) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	return token, ok
}

type ctxPermissionsKey struct{}

// ContextWithPermissions embeds the permission snapshot into the context.
// A nil snapshot is a valid value: it means permissions are unknown and
// every check denies.
func ContextWithPermissions(ctx context.Context, perms *Permissions) context.Context {
	return context.WithValue(ctx, ctxPermissionsKey{}, perms)
}

// PermissionsFromContext extracts the permission snapshot from the context.
// Returns nil when no snapshot was loaded, which evaluates as deny-all.
func PermissionsFromContext(ctx context.Context) *Permissions {
	perms, _ := ctx.Value(ctxPermissionsKey{}).(*Permissions)
	return perms
}
