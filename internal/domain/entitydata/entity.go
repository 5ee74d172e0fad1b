package entitydata

import (
	"time"
)

// EntityKind enum
type EntityKind string

const (
	KindCompany    EntityKind = "company"
	KindIndividual EntityKind = "individual"
)

// EntityRef identifies the entity being assessed. Immutable, caller supplied.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// CacheKey builds the cache key for this entity.
func (r EntityRef) CacheKey() string {
	return string(r.Kind) + ":" + r.ID
}

// FinancialRecord value object
type FinancialRecord struct {
	Revenue            float64 `json:"revenue"`
	ProfitMargin       float64 `json:"profit_margin"`
	DebtToEquity       float64 `json:"debt_to_equity"`
	CurrentRatio       float64 `json:"current_ratio"`
	CreditHistoryYears int     `json:"credit_history_years"`
	PaymentDefaults    int     `json:"payment_defaults"`
}

// PopulatedFields counts fields carrying a real value. A record substituted
// for a failed fetch is all zeroes and counts nothing.
func (f FinancialRecord) PopulatedFields() int {
	n := 0
	if f.Revenue > 0 {
		n++
	}
	if f.ProfitMargin > 0 {
		n++
	}
	if f.DebtToEquity > 0 {
		n++
	}
	if f.CurrentRatio > 0 {
		n++
	}
	if f.CreditHistoryYears > 0 {
		n++
	}
	if f.PaymentDefaults > 0 {
		n++
	}
	return n
}

// CarbonRecord value object
type CarbonRecord struct {
	TotalCO2Tons    float64   `json:"total_co2_tons"`
	Scope1Emissions float64   `json:"scope1_emissions"`
	Scope2Emissions float64   `json:"scope2_emissions"`
	Scope3Emissions float64   `json:"scope3_emissions"`
	Trend           float64   `json:"trend"` // negative = emissions shrinking
	RenewablePct    float64   `json:"renewable_energy_percentage"`
	OffsetTons      float64   `json:"carbon_offset_tons"`
	LastUpdated     time.Time `json:"last_updated"`
}

// HasEmissionsFigure reports whether a total-emissions figure is present.
func (c CarbonRecord) HasEmissionsFigure() bool {
	return c.TotalCO2Tons > 0
}

// ESGRecord value object
type ESGRecord struct {
	Environmental  float64         `json:"environmental_score"`
	Social         float64         `json:"social_score"`
	Governance     float64         `json:"governance_score"`
	SDGAlignment   map[string]bool `json:"sdg_alignment"`
	Certifications []string        `json:"certifications"`
}

// PopulatedFields counts fields carrying a real value.
func (e ESGRecord) PopulatedFields() int {
	n := 0
	if e.Environmental > 0 {
		n++
	}
	if e.Social > 0 {
		n++
	}
	if e.Governance > 0 {
		n++
	}
	if len(e.SDGAlignment) > 0 {
		n++
	}
	if len(e.Certifications) > 0 {
		n++
	}
	return n
}

// SDGAlignedCount counts SDG goals marked aligned.
func (e ESGRecord) SDGAlignedCount() int {
	n := 0
	for _, ok := range e.SDGAlignment {
		if ok {
			n++
		}
	}
	return n
}

// MarketSnapshot value object, collected for portfolio requests.
type MarketSnapshot struct {
	GreenBondsYield   float64   `json:"green_bonds_yield"`
	CarbonCreditPrice float64   `json:"carbon_credit_price"`
	MarketVolatility  float64   `json:"market_volatility"`
	CollectedAt       time.Time `json:"collected_at"`
}

// Aggregate Root: Bundle is one entity's collected data snapshot.
// Immutable once built; re-collection creates a new bundle.
type Bundle struct {
	Entity           EntityRef       `json:"entity"`
	Financial        FinancialRecord `json:"financial"`
	Carbon           CarbonRecord    `json:"carbon_emissions"`
	ESG              ESGRecord       `json:"esg_metrics"`
	DataQualityScore float64         `json:"data_quality_score"`
	CollectedAt      time.Time       `json:"collected_at"`
}
