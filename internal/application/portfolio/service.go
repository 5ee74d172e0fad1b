package portfolio

import (
	"math"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/portfolio"
)

const riskFreeRate = 0.02

// OptimizeTraditional builds a plan from the traditional strategy table.
// Unknown tolerances fall back to moderate.
func OptimizeTraditional(capital float64, tolerance domain.RiskTolerance, market *entitydata.MarketSnapshot) *domain.Plan {
	assets := buildAssets(capital, tableFor(tolerance, false), domain.PlanTraditional)
	m := metrics(assets)

	return &domain.Plan{
		Type:            domain.PlanTraditional,
		TotalValue:      capital,
		Assets:          assets,
		ExpectedReturn:  m.ExpectedReturn,
		Volatility:      m.Volatility,
		SharpeRatio:     m.SharpeRatio,
		CarbonFootprint: m.CarbonFootprint,
		Market:          market,
	}
}

// OptimizeGreen builds a plan from the green strategy table and adds the
// carbon neutrality timeline and SDG alignment score.
func OptimizeGreen(capital float64, tolerance domain.RiskTolerance, market *entitydata.MarketSnapshot) *domain.Plan {
	assets := buildAssets(capital, tableFor(tolerance, true), domain.PlanGreen)
	m := metrics(assets)

	return &domain.Plan{
		Type:              domain.PlanGreen,
		TotalValue:        capital,
		Assets:            assets,
		ExpectedReturn:    m.ExpectedReturn,
		Volatility:        m.Volatility,
		SharpeRatio:       m.SharpeRatio,
		CarbonFootprint:   m.CarbonFootprint,
		NeutralityYears:   neutralityTimeline(m.CarbonFootprint),
		SDGAlignmentScore: m.SDGScore,
		Market:            market,
	}
}

// Compare contrasts the carbon impact of a traditional and a green plan.
func Compare(trad, green *domain.Plan) *domain.Comparison {
	reduction := trad.CarbonFootprint - green.CarbonFootprint
	reductionPct := 0.0
	if trad.CarbonFootprint > 0 {
		reductionPct = reduction / trad.CarbonFootprint * 100
	}

	return &domain.Comparison{
		TraditionalTons: round2(trad.CarbonFootprint),
		GreenTons:       round2(green.CarbonFootprint),
		ReductionTons:   round2(reduction),
		ReductionPct:    round2(reductionPct),
		NetZeroYears:    round1(green.CarbonFootprint / math.Max(1, reduction) * 10),
	}
}

func buildAssets(capital float64, rows []allocation, planType domain.PlanType) []domain.Asset {
	assets := make([]domain.Asset, 0, len(rows))
	for _, row := range rows {
		a := domain.Asset{
			Name:           row.name,
			Type:           planType,
			Allocation:     row.weight,
			Value:          round2(capital * row.weight),
			ExpectedReturn: row.ret,
			Volatility:     row.vol,
			AnnualCO2Tons:  row.co2 * row.weight,
		}
		if planType == domain.PlanGreen {
			a.ESGRating = row.esgRating
			a.SDGAligned = true
		}
		assets = append(assets, a)
	}
	return assets
}

func metrics(assets []domain.Asset) domain.Metrics {
	var ret, vol, footprint, sdg float64
	for _, a := range assets {
		ret += a.ExpectedReturn * a.Allocation
		vol += a.Volatility * a.Allocation
		footprint += a.AnnualCO2Tons
		if a.SDGAligned {
			sdg += a.Allocation * 100
		}
	}

	sharpe := 0.0
	if vol > 0 {
		sharpe = (ret - riskFreeRate) / vol
	}

	return domain.Metrics{
		ExpectedReturn:  round4(ret),
		Volatility:      round4(vol),
		SharpeRatio:     round3(sharpe),
		CarbonFootprint: round2(footprint),
		SDGScore:        round2(sdg),
	}
}

// neutralityTimeline estimates years to carbon neutrality assuming a 10%
// annual footprint reduction.
func neutralityTimeline(footprint float64) float64 {
	switch {
	case footprint <= 100:
		return 2.0
	case footprint <= 500:
		return 5.0
	case footprint <= 1000:
		return 8.0
	}
	years := 0
	current := footprint
	for current > 100 && years < 30 {
		current *= 0.90
		years++
	}
	return float64(years)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
