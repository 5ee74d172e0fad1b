package aggregation

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Jeffy123-zhu/ai-green/internal/application"
	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

// Service implements the multi-source aggregation use-case: fan out to the
// provider for financial/carbon/ESG records, join, grade completeness, and
// write the bundle through the cache. Safe for concurrent use.
type Service struct {
	Provider     domain.Provider
	Cache        domain.BundleCache
	Clock        application.Clock
	FetchTimeout time.Duration // per-source boundary; zero = request context only
}

// Collect returns the entity's bundle, served from cache when fresh.
func (s *Service) Collect(ctx context.Context, ref domain.EntityRef) (*domain.Bundle, error) {
	return s.Cache.GetOrFetch(ctx, ref.CacheKey(), func(ctx context.Context) (*domain.Bundle, error) {
		return s.collectFresh(ctx, ref)
	})
}

func (s *Service) collectFresh(ctx context.Context, ref domain.EntityRef) (*domain.Bundle, error) {
	var (
		fin    domain.FinancialRecord
		carbon domain.CarbonRecord
		esg    domain.ESGRecord

		finErr, carbonErr, esgErr error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fin, finErr = s.fetchFinancial(gCtx, ref.ID)
		return nil // a failed source is recovered below, never fatal to siblings
	})
	g.Go(func() error {
		carbon, carbonErr = s.fetchCarbon(gCtx, ref.ID)
		return nil
	})
	g.Go(func() error {
		esg, esgErr = s.fetchESG(gCtx, ref.ID)
		return nil
	})
	_ = g.Wait()

	failed := 0
	for _, err := range []error{finErr, carbonErr, esgErr} {
		if err != nil {
			failed++
		}
	}
	if failed == 3 {
		return nil, fmt.Errorf("collect %s: %w", ref.CacheKey(), domain.ErrNoDataAvailable)
	}
	if finErr != nil {
		log.Printf("aggregation partial entity=%s source=financial err=%v", ref.ID, finErr)
	}
	if carbonErr != nil {
		log.Printf("aggregation partial entity=%s source=carbon err=%v", ref.ID, carbonErr)
	}
	if esgErr != nil {
		log.Printf("aggregation partial entity=%s source=esg err=%v", ref.ID, esgErr)
	}

	return &domain.Bundle{
		Entity:           ref,
		Financial:        fin,
		Carbon:           carbon,
		ESG:              esg,
		DataQualityScore: QualityScore(fin, carbon, esg),
		CollectedAt:      s.Clock.Now(),
	}, nil
}

// CollectMarket fetches a market snapshot for portfolio requests. Market
// data is point-in-time and bypasses the bundle cache.
func (s *Service) CollectMarket(ctx context.Context) (domain.MarketSnapshot, error) {
	ctx, cancel := s.sourceContext(ctx)
	defer cancel()
	snap, err := s.Provider.FetchMarket(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, fmt.Errorf("collect market: %w", err)
	}
	return snap, nil
}

func (s *Service) fetchFinancial(ctx context.Context, id string) (domain.FinancialRecord, error) {
	ctx, cancel := s.sourceContext(ctx)
	defer cancel()
	return s.Provider.FetchFinancial(ctx, id)
}

func (s *Service) fetchCarbon(ctx context.Context, id string) (domain.CarbonRecord, error) {
	ctx, cancel := s.sourceContext(ctx)
	defer cancel()
	return s.Provider.FetchCarbon(ctx, id)
}

func (s *Service) fetchESG(ctx context.Context, id string) (domain.ESGRecord, error) {
	ctx, cancel := s.sourceContext(ctx)
	defer cancel()
	return s.Provider.FetchESG(ctx, id)
}

func (s *Service) sourceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.FetchTimeout)
}

// QualityScore grades bundle completeness: 33 points for a financial record
// with at least 5 populated fields, 33 for a present total-emissions figure,
// 34 for an ESG record with at least 4 populated fields.
func QualityScore(fin domain.FinancialRecord, carbon domain.CarbonRecord, esg domain.ESGRecord) float64 {
	score := 0.0
	if fin.PopulatedFields() >= 5 {
		score += 33
	}
	if carbon.HasEmissionsFigure() {
		score += 33
	}
	if esg.PopulatedFields() >= 4 {
		score += 34
	}
	return score
}
