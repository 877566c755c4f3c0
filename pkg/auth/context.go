package auth

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type contextKey string

// ContextKeyProvider is the context key for the address that signed the request
const ContextKeyProvider contextKey = "provider"

// WithProvider adds the authenticated provider address to the context
func WithProvider(ctx context.Context, provider common.Address) context.Context {
	return context.WithValue(ctx, ContextKeyProvider, provider)
}

// ProviderFromContext retrieves the authenticated provider address from the context
func ProviderFromContext(ctx context.Context) (common.Address, bool) {
	addr, ok := ctx.Value(ContextKeyProvider).(common.Address)
	return addr, ok
}
