package scoring

import (
	"math"
	"sync"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

// Assess runs the three sub-scorers concurrently over one bundle snapshot
// and fuses them into the composite risk score, credit score, and category.
// Every figure is a pure function of the bundle plus fixed weights.
func Assess(bundle *entitydata.Bundle) *assessment.RiskAssessment {
	var (
		trad   assessment.TraditionalRisk
		carbon assessment.CarbonRisk
		esg    assessment.ESGRisk
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		trad = TraditionalRisk(bundle.Financial)
	}()
	go func() {
		defer wg.Done()
		carbon = CarbonRisk(bundle.Carbon)
	}()
	go func() {
		defer wg.Done()
		esg = ESGRisk(bundle.ESG)
	}()
	wg.Wait()

	composite := round2(trad.RiskScore*0.5 + carbon.PerformanceScore*0.3 + esg.Score*0.2)

	return &assessment.RiskAssessment{
		Traditional:    trad,
		Carbon:         carbon,
		ESG:            esg,
		CompositeScore: composite,
		CreditScore:    CreditScore(composite),
		Category:       Categorize(composite),
	}
}

// TraditionalRisk scores classic financial health factors.
func TraditionalRisk(fin entitydata.FinancialRecord) assessment.TraditionalRisk {
	revenueScore := math.Min(100, fin.Revenue/100000)
	profitabilityScore := fin.ProfitMargin * 100
	leverageScore := math.Max(0, 100-fin.DebtToEquity*50)
	liquidityScore := math.Min(100, fin.CurrentRatio*40)
	defaultPenalty := float64(fin.PaymentDefaults) * 15

	score := revenueScore*0.2 +
		profitabilityScore*0.3 +
		leverageScore*0.2 +
		liquidityScore*0.3 -
		defaultPenalty

	return assessment.TraditionalRisk{
		RiskScore:               clamp(score, 0, 100),
		RevenueAssessment:       grade(fin.Revenue > 5_000_000, "strong", "moderate"),
		ProfitabilityAssessment: grade(fin.ProfitMargin > 0.15, "strong", "moderate"),
		LeverageAssessment:      grade(fin.DebtToEquity < 1.0, "low", "moderate"),
		LiquidityAssessment:     grade(fin.CurrentRatio > 1.5, "strong", "moderate"),
		DefaultHistory:          grade(fin.PaymentDefaults == 0, "clean", "concerning"),
	}
}

// CarbonRisk scores carbon exposure, then inverts the figure so that a
// higher score means better carbon posture. Distinct from the standalone
// CarbonPerformance used by the rating engine.
func CarbonRisk(c entitydata.CarbonRecord) assessment.CarbonRisk {
	intensityRisk := math.Min(100, c.TotalCO2Tons/50)
	trendRisk := math.Max(0, c.Trend*100) // rising emissions raise risk
	transitionRisk := math.Max(0, 100-c.RenewablePct)
	offsetBenefit := math.Min(30, c.OffsetTons/10)

	risk := clamp(intensityRisk*0.4+trendRisk*0.3+transitionRisk*0.3-offsetBenefit, 0, 100)

	return assessment.CarbonRisk{
		PerformanceScore:    round2(100 - risk),
		EmissionIntensity:   grade(c.TotalCO2Tons > 2000, "high", "moderate"),
		TrendDirection:      grade(c.Trend < 0, "improving", "worsening"),
		TransitionReadiness: grade(c.RenewablePct > 50, "strong", "developing"),
		RegulatoryRisk:      regulatoryRisk(c.TotalCO2Tons, c.RenewablePct),
		StrandedAssetRisk:   grade(c.RenewablePct < 20, "high", "low"),
	}
}

// ESGRisk scores environmental/social/governance posture with an SDG bonus.
func ESGRisk(e entitydata.ESGRecord) assessment.ESGRisk {
	base := e.Environmental*0.4 + e.Social*0.3 + e.Governance*0.3
	sdgBonus := float64(e.SDGAlignedCount()) * 5
	final := round2(math.Min(100, base+sdgBonus))

	return assessment.ESGRisk{
		Score:            final,
		EnvironmentalRtg: componentRating(e.Environmental),
		SocialRtg:        componentRating(e.Social),
		GovernanceRtg:    componentRating(e.Governance),
		SDGAlignedCount:  e.SDGAlignedCount(),
		ReputationalRisk: grade(final > 70, "low", "moderate"),
	}
}

// CreditScore maps a 0-100 composite onto the 300-850 credit range.
func CreditScore(composite float64) int {
	return int(300 + (composite/100)*550)
}

// Categorize buckets a composite score into a risk category.
func Categorize(composite float64) assessment.RiskCategory {
	switch {
	case composite >= 80:
		return assessment.CategoryLow
	case composite >= 60:
		return assessment.CategoryModerate
	case composite >= 40:
		return assessment.CategoryElevated
	default:
		return assessment.CategoryHigh
	}
}

func regulatoryRisk(totalEmissions, renewablePct float64) string {
	switch {
	case totalEmissions > 3000 && renewablePct < 30:
		return "high"
	case totalEmissions > 1500 || renewablePct < 50:
		return "moderate"
	default:
		return "low"
	}
}

func componentRating(score float64) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "needs_improvement"
	}
}

func grade(cond bool, pass, fail string) string {
	if cond {
		return pass
	}
	return fail
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
