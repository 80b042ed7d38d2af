// Package identity carries the caller identity through request contexts.
//
// The workspace core never talks to an identity provider itself; the HTTP
// middleware (or the MCP entry point) resolves the caller and attaches a
// Principal to the context. Every service operation reads it back from
// there, so tests can impersonate any user without a running backend.
package identity

import "context"

// Principal is the authenticated caller.
type Principal struct {
	// Subject is the stable user identifier issued by the identity
	// provider. It is the value stored as Document.UserID.
	Subject string
}

type ctxKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the Principal attached to ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok && p.Subject != ""
}
