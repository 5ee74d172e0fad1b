package simulated

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

func TestFetchFinancialStaysInRange(t *testing.T) {
	p := New(Options{Seed: 42})

	for i := 0; i < 50; i++ {
		rec, err := p.FetchFinancial(context.Background(), "co-1001")
		require.NoError(t, err)

		assert.GreaterOrEqual(t, rec.Revenue, 1_000_000.0)
		assert.LessOrEqual(t, rec.Revenue, 10_000_000.0)
		assert.GreaterOrEqual(t, rec.ProfitMargin, 0.05)
		assert.LessOrEqual(t, rec.ProfitMargin, 0.25)
		assert.GreaterOrEqual(t, rec.DebtToEquity, 0.3)
		assert.LessOrEqual(t, rec.DebtToEquity, 1.5)
		assert.GreaterOrEqual(t, rec.CurrentRatio, 1.0)
		assert.LessOrEqual(t, rec.CurrentRatio, 2.5)
		assert.GreaterOrEqual(t, rec.CreditHistoryYears, 1)
		assert.LessOrEqual(t, rec.CreditHistoryYears, 20)
		assert.GreaterOrEqual(t, rec.PaymentDefaults, 0)
		assert.LessOrEqual(t, rec.PaymentDefaults, 3)
	}
}

func TestFetchCarbonStaysInRange(t *testing.T) {
	p := New(Options{Seed: 42})

	for i := 0; i < 50; i++ {
		rec, err := p.FetchCarbon(context.Background(), "co-1001")
		require.NoError(t, err)

		assert.GreaterOrEqual(t, rec.TotalCO2Tons, 100.0)
		assert.LessOrEqual(t, rec.TotalCO2Tons, 5000.0)
		assert.GreaterOrEqual(t, rec.Trend, -0.15)
		assert.LessOrEqual(t, rec.Trend, 0.10)
		assert.GreaterOrEqual(t, rec.RenewablePct, 0.0)
		assert.LessOrEqual(t, rec.RenewablePct, 80.0)
		assert.GreaterOrEqual(t, rec.OffsetTons, 0.0)
		assert.LessOrEqual(t, rec.OffsetTons, 500.0)
		assert.False(t, rec.LastUpdated.IsZero())
	}
}

func TestFetchESGStaysInRange(t *testing.T) {
	p := New(Options{Seed: 42})

	for i := 0; i < 50; i++ {
		rec, err := p.FetchESG(context.Background(), "co-1001")
		require.NoError(t, err)

		assert.GreaterOrEqual(t, rec.Environmental, 40.0)
		assert.LessOrEqual(t, rec.Environmental, 95.0)
		assert.GreaterOrEqual(t, rec.Social, 45.0)
		assert.LessOrEqual(t, rec.Social, 90.0)
		assert.GreaterOrEqual(t, rec.Governance, 50.0)
		assert.LessOrEqual(t, rec.Governance, 95.0)
		assert.True(t, rec.SDGAlignment["SDG13"], "climate action is always claimed")
		assert.LessOrEqual(t, len(rec.Certifications), 3)
	}
}

func TestFetchMarketStaysInRange(t *testing.T) {
	p := New(Options{Seed: 42})

	snap, err := p.FetchMarket(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, snap.GreenBondsYield, 0.03)
	assert.LessOrEqual(t, snap.GreenBondsYield, 0.06)
	assert.GreaterOrEqual(t, snap.CarbonCreditPrice, 20.0)
	assert.LessOrEqual(t, snap.CarbonCreditPrice, 80.0)
	assert.GreaterOrEqual(t, snap.MarketVolatility, 0.10)
	assert.LessOrEqual(t, snap.MarketVolatility, 0.30)
	assert.False(t, snap.CollectedAt.IsZero())
}

func TestSeedMakesFetchesReproducible(t *testing.T) {
	a, err := New(Options{Seed: 7}).FetchFinancial(context.Background(), "co-1001")
	require.NoError(t, err)
	b, err := New(Options{Seed: 7}).FetchFinancial(context.Background(), "co-1001")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFailureInjection(t *testing.T) {
	p := New(Options{Seed: 42, FailureRate: 1.0})
	ctx := context.Background()

	_, err := p.FetchFinancial(ctx, "co-1001")
	assert.ErrorIs(t, err, entitydata.ErrSourceUnavailable)
	_, err = p.FetchCarbon(ctx, "co-1001")
	assert.ErrorIs(t, err, entitydata.ErrSourceUnavailable)
	_, err = p.FetchESG(ctx, "co-1001")
	assert.ErrorIs(t, err, entitydata.ErrSourceUnavailable)
	_, err = p.FetchMarket(ctx)
	assert.ErrorIs(t, err, entitydata.ErrSourceUnavailable)
}

func TestLatencyHonorsContextCancellation(t *testing.T) {
	p := New(Options{Seed: 42, Latency: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.FetchFinancial(ctx, "co-1001")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
