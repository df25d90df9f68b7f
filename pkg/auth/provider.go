package auth

import (
	"context"
	"fmt"
)

// IdentityProvider verifies a raw bearer credential and returns the
// principal it belongs to. Implementations must treat any verification
// failure as a hard rejection; there is no partial authentication.
type IdentityProvider interface {
	Verify(ctx context.Context, rawToken string) (*Principal, error)
}

// StaticProvider verifies tokens against a fixed in-memory table.
// Intended for tests and local development.
type StaticProvider struct {
	principals map[string]*Principal
}

// NewStaticProvider creates a provider from a token -> principal table.
func NewStaticProvider(principals map[string]*Principal) *StaticProvider {
	if principals == nil {
		principals = make(map[string]*Principal)
	}
	return &StaticProvider{principals: principals}
}

// Verify looks the token up in the static table.
func (p *StaticProvider) Verify(_ context.Context, rawToken string) (*Principal, error) {
	principal, ok := p.principals[rawToken]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", ErrUnauthenticated)
	}
	cp := *principal
	return &cp, nil
}
