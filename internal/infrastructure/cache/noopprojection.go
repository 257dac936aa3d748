package cache

import "context"

// NoopProjectionCache satisfies the projection interface when Redis is not
// configured. Every read is a miss, so the evaluator always runs.
type NoopProjectionCache struct{}

func NewNoopProjectionCache() *NoopProjectionCache {
	return &NoopProjectionCache{}
}

func (NoopProjectionCache) SetPremium(context.Context, string, bool) error {
	return nil
}

func (NoopProjectionCache) GetPremium(context.Context, string) (bool, error) {
	return false, ErrProjectionMiss
}

func (NoopProjectionCache) Invalidate(context.Context, string) error {
	return nil
}
