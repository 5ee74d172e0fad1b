package entitydata

import "context"

// Provider port (interface an upstream data source must satisfy).
// Each fetch is independent and may fail with ErrSourceUnavailable.
type Provider interface {
	FetchFinancial(ctx context.Context, entityID string) (FinancialRecord, error)
	FetchCarbon(ctx context.Context, entityID string) (CarbonRecord, error)
	FetchESG(ctx context.Context, entityID string) (ESGRecord, error)
	FetchMarket(ctx context.Context) (MarketSnapshot, error)
}

// FetchFunc produces a fresh bundle on cache miss.
type FetchFunc func(ctx context.Context) (*Bundle, error)

// BundleCache port (interface for bundle memoization)
type BundleCache interface {
	GetOrFetch(ctx context.Context, key string, fetch FetchFunc) (*Bundle, error)
	Get(key string) (*Bundle, bool)
	Len() int
	Clear()
}
