package sysnet

import (
	"context"
	"errors"
	"net"
)

// FallbackResolver tries the resolvers in order until one of them succeeds.
//
// Remarks:
//   - All resolvers share the ctx deadline, a resolver that caches addresses
//     should come last, since it answers from the cache without waiting.
type FallbackResolver struct {
	resolvers []Resolver
}

// NewFallbackResolver is an initialization of FallbackResolver.
func NewFallbackResolver(resolvers ...Resolver) *FallbackResolver {
	return &FallbackResolver{resolvers: resolvers}
}

// Resolve returns the first resolved address, or all errors joined.
func (r *FallbackResolver) Resolve(ctx context.Context, hostname string) (net.Addr, error) {
	var errs []error

	for _, resolver := range r.resolvers {
		addr, err := resolver.Resolve(ctx, hostname)
		if err == nil {
			return addr, nil
		}

		errs = append(errs, err)
	}

	return nil, errors.Join(errs...)
}
