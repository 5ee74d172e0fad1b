package aggregation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
	"github.com/Jeffy123-zhu/ai-green/internal/infra/cache"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// stubProvider serves canned records and counts fetches per source.
type stubProvider struct {
	fin    entitydata.FinancialRecord
	carbon entitydata.CarbonRecord
	esg    entitydata.ESGRecord
	market entitydata.MarketSnapshot

	finErr    error
	carbonErr error
	esgErr    error
	marketErr error

	finCalls int64
}

func (p *stubProvider) FetchFinancial(ctx context.Context, entityID string) (entitydata.FinancialRecord, error) {
	atomic.AddInt64(&p.finCalls, 1)
	return p.fin, p.finErr
}

func (p *stubProvider) FetchCarbon(ctx context.Context, entityID string) (entitydata.CarbonRecord, error) {
	return p.carbon, p.carbonErr
}

func (p *stubProvider) FetchESG(ctx context.Context, entityID string) (entitydata.ESGRecord, error) {
	return p.esg, p.esgErr
}

func (p *stubProvider) FetchMarket(ctx context.Context) (entitydata.MarketSnapshot, error) {
	return p.market, p.marketErr
}

func healthyProvider() *stubProvider {
	return &stubProvider{
		fin: entitydata.FinancialRecord{
			Revenue:            6_000_000,
			ProfitMargin:       0.18,
			DebtToEquity:       0.8,
			CurrentRatio:       1.8,
			CreditHistoryYears: 10,
		},
		carbon: entitydata.CarbonRecord{TotalCO2Tons: 1000, Trend: -0.05, RenewablePct: 40},
		esg: entitydata.ESGRecord{
			Environmental: 85,
			Social:        80,
			Governance:    85,
			SDGAlignment:  map[string]bool{"SDG13": true},
		},
		market: entitydata.MarketSnapshot{GreenBondsYield: 0.045},
	}
}

func newTestService(p *stubProvider) *Service {
	clock := fixedClock{t: testTime}
	return &Service{
		Provider: p,
		Cache:    cache.New(time.Hour, 0, clock),
		Clock:    clock,
	}
}

func TestCollectAllSourcesHealthy(t *testing.T) {
	p := healthyProvider()
	svc := newTestService(p)

	ref := entitydata.EntityRef{ID: "co-1001", Kind: entitydata.KindCompany}
	bundle, err := svc.Collect(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, bundle)

	assert.Equal(t, ref, bundle.Entity)
	assert.Equal(t, p.fin, bundle.Financial)
	assert.Equal(t, p.carbon, bundle.Carbon)
	assert.Equal(t, 100.0, bundle.DataQualityScore)
	assert.Equal(t, testTime, bundle.CollectedAt)
}

func TestCollectPartialOutageLowersQuality(t *testing.T) {
	p := healthyProvider()
	p.esgErr = entitydata.ErrSourceUnavailable
	svc := newTestService(p)

	bundle, err := svc.Collect(context.Background(), entitydata.EntityRef{ID: "co-1001", Kind: entitydata.KindCompany})
	require.NoError(t, err)

	// the failed source is substituted with an empty record
	assert.Equal(t, entitydata.ESGRecord{}, bundle.ESG)
	assert.Equal(t, 66.0, bundle.DataQualityScore)
}

func TestCollectAllSourcesDown(t *testing.T) {
	p := healthyProvider()
	p.finErr = entitydata.ErrSourceUnavailable
	p.carbonErr = entitydata.ErrSourceUnavailable
	p.esgErr = entitydata.ErrSourceUnavailable
	svc := newTestService(p)

	bundle, err := svc.Collect(context.Background(), entitydata.EntityRef{ID: "co-1001", Kind: entitydata.KindCompany})
	assert.Nil(t, bundle)
	require.Error(t, err)
	assert.ErrorIs(t, err, entitydata.ErrNoDataAvailable)
}

func TestCollectServesSecondCallFromCache(t *testing.T) {
	p := healthyProvider()
	svc := newTestService(p)
	ref := entitydata.EntityRef{ID: "co-1001", Kind: entitydata.KindCompany}

	first, err := svc.Collect(context.Background(), ref)
	require.NoError(t, err)
	second, err := svc.Collect(context.Background(), ref)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), atomic.LoadInt64(&p.finCalls))
}

func TestCollectDistinctEntitiesFetchSeparately(t *testing.T) {
	p := healthyProvider()
	svc := newTestService(p)

	_, err := svc.Collect(context.Background(), entitydata.EntityRef{ID: "co-1", Kind: entitydata.KindCompany})
	require.NoError(t, err)
	_, err = svc.Collect(context.Background(), entitydata.EntityRef{ID: "co-2", Kind: entitydata.KindCompany})
	require.NoError(t, err)

	assert.Equal(t, int64(2), atomic.LoadInt64(&p.finCalls))
}

func TestCollectMarket(t *testing.T) {
	p := healthyProvider()
	svc := newTestService(p)

	snap, err := svc.CollectMarket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.045, snap.GreenBondsYield)

	p.marketErr = entitydata.ErrSourceUnavailable
	_, err = svc.CollectMarket(context.Background())
	assert.ErrorIs(t, err, entitydata.ErrSourceUnavailable)
}

func TestQualityScore(t *testing.T) {
	p := healthyProvider()

	assert.Equal(t, 100.0, QualityScore(p.fin, p.carbon, p.esg))
	assert.Equal(t, 67.0, QualityScore(p.fin, entitydata.CarbonRecord{}, p.esg))
	assert.Equal(t, 66.0, QualityScore(p.fin, p.carbon, entitydata.ESGRecord{}))
	assert.Equal(t, 0.0, QualityScore(entitydata.FinancialRecord{}, entitydata.CarbonRecord{}, entitydata.ESGRecord{}))
}
