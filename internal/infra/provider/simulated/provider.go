package simulated

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

var certificationPool = []string{"ISO14001", "B-Corp", "LEED", "Carbon Neutral"}

// Options tune the simulation.
type Options struct {
	Latency     time.Duration // per-fetch artificial delay
	FailureRate float64       // probability a fetch fails with ErrSourceUnavailable
	Seed        int64         // 0 = time-based
}

// Provider is the reference DataProvider implementation. It stands in for
// the real financial/satellite/ESG upstreams and serves randomized records
// within realistic ranges.
type Provider struct {
	opts Options

	mu         sync.Mutex
	randSource *rand.Rand
}

var _ entitydata.Provider = (*Provider)(nil)

func New(opts Options) *Provider {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Dedicated random source to avoid contention
	return &Provider{
		opts:       opts,
		randSource: rand.New(rand.NewSource(seed)),
	}
}

func (p *Provider) FetchFinancial(ctx context.Context, entityID string) (entitydata.FinancialRecord, error) {
	if err := p.simulateCall(ctx, "financial"); err != nil {
		return entitydata.FinancialRecord{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return entitydata.FinancialRecord{
		Revenue:            float64(p.intBetween(1_000_000, 10_000_000)),
		ProfitMargin:       round(p.uniform(0.05, 0.25), 3),
		DebtToEquity:       round(p.uniform(0.3, 1.5), 2),
		CurrentRatio:       round(p.uniform(1.0, 2.5), 2),
		CreditHistoryYears: p.intBetween(1, 20),
		PaymentDefaults:    p.intBetween(0, 3),
	}, nil
}

func (p *Provider) FetchCarbon(ctx context.Context, entityID string) (entitydata.CarbonRecord, error) {
	if err := p.simulateCall(ctx, "carbon"); err != nil {
		return entitydata.CarbonRecord{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return entitydata.CarbonRecord{
		TotalCO2Tons:    float64(p.intBetween(100, 5000)),
		Scope1Emissions: float64(p.intBetween(50, 2000)),
		Scope2Emissions: float64(p.intBetween(30, 1500)),
		Scope3Emissions: float64(p.intBetween(20, 1500)),
		Trend:           round(p.uniform(-0.15, 0.10), 3),
		RenewablePct:    float64(p.intBetween(0, 80)),
		OffsetTons:      float64(p.intBetween(0, 500)),
		LastUpdated:     time.Now(),
	}, nil
}

func (p *Provider) FetchESG(ctx context.Context, entityID string) (entitydata.ESGRecord, error) {
	if err := p.simulateCall(ctx, "esg"); err != nil {
		return entitydata.ESGRecord{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return entitydata.ESGRecord{
		Environmental: float64(p.intBetween(40, 95)),
		Social:        float64(p.intBetween(45, 90)),
		Governance:    float64(p.intBetween(50, 95)),
		SDGAlignment: map[string]bool{
			"SDG7":  p.coin(),
			"SDG8":  p.coin(),
			"SDG13": true, // climate action, always claimed
			"SDG17": p.coin(),
		},
		Certifications: p.sampleCertifications(),
	}, nil
}

func (p *Provider) FetchMarket(ctx context.Context) (entitydata.MarketSnapshot, error) {
	if err := p.simulateCall(ctx, "market"); err != nil {
		return entitydata.MarketSnapshot{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return entitydata.MarketSnapshot{
		GreenBondsYield:   round(p.uniform(0.03, 0.06), 4),
		CarbonCreditPrice: round(p.uniform(20, 80), 2),
		MarketVolatility:  round(p.uniform(0.10, 0.30), 3),
		CollectedAt:       time.Now(),
	}, nil
}

// simulateCall applies the configured latency and failure rate while
// honoring context cancellation.
func (p *Provider) simulateCall(ctx context.Context, source string) error {
	if p.opts.Latency > 0 {
		t := time.NewTimer(p.opts.Latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return fmt.Errorf("%s fetch: %w", source, ctx.Err())
		}
	}
	if p.opts.FailureRate > 0 {
		p.mu.Lock()
		failed := p.randSource.Float64() < p.opts.FailureRate
		p.mu.Unlock()
		if failed {
			return fmt.Errorf("%s fetch: %w", source, entitydata.ErrSourceUnavailable)
		}
	}
	return nil
}

func (p *Provider) intBetween(min, max int) int {
	return min + p.randSource.Intn(max-min+1)
}

func (p *Provider) uniform(min, max float64) float64 {
	return min + p.randSource.Float64()*(max-min)
}

func (p *Provider) coin() bool {
	return p.randSource.Intn(2) == 1
}

func (p *Provider) sampleCertifications() []string {
	k := p.randSource.Intn(len(certificationPool))
	pool := make([]string, len(certificationPool))
	copy(pool, certificationPool)
	p.randSource.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:k]
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
