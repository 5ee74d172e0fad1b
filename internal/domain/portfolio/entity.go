package portfolio

import (
	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

// RiskTolerance enum
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceModerate     RiskTolerance = "moderate"
	ToleranceAggressive   RiskTolerance = "aggressive"
)

// PlanType enum
type PlanType string

const (
	PlanTraditional PlanType = "traditional"
	PlanGreen       PlanType = "green"
)

// Asset is one allocated position in a plan.
type Asset struct {
	Name           string   `json:"name"`
	Type           PlanType `json:"type"`
	Allocation     float64  `json:"allocation"`
	Value          float64  `json:"value"`
	ExpectedReturn float64  `json:"expected_return"`
	Volatility     float64  `json:"volatility"`
	AnnualCO2Tons  float64  `json:"annual_co2_tons"`
	ESGRating      string   `json:"esg_rating,omitempty"`
	SDGAligned     bool     `json:"sdg_aligned,omitempty"`
}

// Metrics holds plan-level aggregates.
type Metrics struct {
	ExpectedReturn  float64 `json:"expected_return"`
	Volatility      float64 `json:"volatility"`
	SharpeRatio     float64 `json:"sharpe_ratio"`
	CarbonFootprint float64 `json:"annual_carbon_footprint"`
	SDGScore        float64 `json:"sdg_alignment_score"`
}

// Plan is one optimized allocation for a capital amount.
type Plan struct {
	Type              PlanType                   `json:"portfolio_type"`
	TotalValue        float64                    `json:"total_value"`
	Assets            []Asset                    `json:"assets"`
	ExpectedReturn    float64                    `json:"expected_return"`
	Volatility        float64                    `json:"volatility"`
	SharpeRatio       float64                    `json:"sharpe_ratio"`
	CarbonFootprint   float64                    `json:"annual_carbon_footprint"`
	NeutralityYears   float64                    `json:"carbon_neutrality_timeline_years,omitempty"`
	SDGAlignmentScore float64                    `json:"sdg_alignment_score,omitempty"`
	Market            *entitydata.MarketSnapshot `json:"market_context,omitempty"`
}

// Comparison contrasts the carbon impact of two plans.
type Comparison struct {
	TraditionalTons float64 `json:"traditional_emissions_tons"`
	GreenTons       float64 `json:"green_emissions_tons"`
	ReductionTons   float64 `json:"reduction_tons"`
	ReductionPct    float64 `json:"reduction_percentage"`
	NetZeroYears    float64 `json:"net_zero_timeline_years"`
}
