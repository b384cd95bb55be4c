package jwtx

import "context"

type claimsKey struct{}

// NewContext stores verified claims inside the context for downstream consumers.
func NewContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// FromContext retrieves claims previously stored with NewContext.
func FromContext(ctx context.Context) (*Claims, bool) {
	if ctx == nil {
		return nil, false
	}
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
