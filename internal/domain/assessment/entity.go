package assessment

// RiskCategory enum
type RiskCategory string

const (
	CategoryLow      RiskCategory = "low"
	CategoryModerate RiskCategory = "moderate"
	CategoryElevated RiskCategory = "elevated"
	CategoryHigh     RiskCategory = "high"
)

// RatingLetter enum
type RatingLetter string

const (
	RatingAAA RatingLetter = "AAA"
	RatingAA  RatingLetter = "AA"
	RatingA   RatingLetter = "A"
	RatingBBB RatingLetter = "BBB"
	RatingBB  RatingLetter = "BB"
)

// TraditionalRisk value object: financial sub-score plus qualitative labels.
type TraditionalRisk struct {
	RiskScore               float64 `json:"risk_score"`
	RevenueAssessment       string  `json:"revenue_assessment"`
	ProfitabilityAssessment string  `json:"profitability_assessment"`
	LeverageAssessment      string  `json:"leverage_assessment"`
	LiquidityAssessment     string  `json:"liquidity_assessment"`
	DefaultHistory          string  `json:"default_history"`
}

// CarbonRisk value object. PerformanceScore is the inverted risk figure:
// higher means better carbon posture.
type CarbonRisk struct {
	PerformanceScore    float64 `json:"carbon_risk_score"`
	EmissionIntensity   string  `json:"emission_intensity"`
	TrendDirection      string  `json:"trend_direction"`
	TransitionReadiness string  `json:"transition_readiness"`
	RegulatoryRisk      string  `json:"regulatory_risk"`
	StrandedAssetRisk   string  `json:"stranded_asset_risk"`
}

// ESGRisk value object
type ESGRisk struct {
	Score            float64 `json:"esg_risk_score"`
	EnvironmentalRtg string  `json:"environmental_rating"`
	SocialRtg        string  `json:"social_rating"`
	GovernanceRtg    string  `json:"governance_rating"`
	SDGAlignedCount  int     `json:"sdg_aligned_count"`
	ReputationalRisk string  `json:"reputational_risk"`
}

// RiskAssessment is the fused multi-factor result.
type RiskAssessment struct {
	Traditional    TraditionalRisk `json:"traditional_risk"`
	Carbon         CarbonRisk      `json:"carbon_risk"`
	ESG            ESGRisk         `json:"esg_risk"`
	CompositeScore float64         `json:"composite_risk_score"`
	CreditScore    int             `json:"credit_score"`
	Category       RiskCategory    `json:"risk_category"`
}

// CreditRating combines creditworthiness with carbon performance.
// Derived, only persisted as part of the report that produced it.
type CreditRating struct {
	Letter           RatingLetter `json:"rating"`
	CombinedScore    float64      `json:"combined_score"`
	TraditionalScore float64      `json:"traditional_score"`
	CarbonScore      float64      `json:"carbon_score"`
	RateAdjustment   float64      `json:"interest_rate_adjustment"`
}
