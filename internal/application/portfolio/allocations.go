package portfolio

import (
	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/portfolio"
)

// allocation is one row of the static strategy tables: target weight,
// expected annual return, volatility, and annual CO2 tons at full weight.
type allocation struct {
	name      string
	weight    float64
	ret       float64
	vol       float64
	co2       float64
	esgRating string
}

var traditionalAllocations = map[domain.RiskTolerance][]allocation{
	domain.ToleranceConservative: {
		{name: "Bonds", weight: 0.60, ret: 0.04, vol: 0.05, co2: 500},
		{name: "Large Cap Stocks", weight: 0.25, ret: 0.08, vol: 0.15, co2: 2000},
		{name: "Real Estate", weight: 0.10, ret: 0.06, vol: 0.12, co2: 1500},
		{name: "Cash", weight: 0.05, ret: 0.01, vol: 0.02, co2: 0},
	},
	domain.ToleranceModerate: {
		{name: "Index Funds", weight: 0.40, ret: 0.08, vol: 0.15, co2: 2000},
		{name: "Bonds", weight: 0.30, ret: 0.04, vol: 0.06, co2: 500},
		{name: "Stocks", weight: 0.20, ret: 0.10, vol: 0.18, co2: 2500},
		{name: "Alternatives", weight: 0.10, ret: 0.07, vol: 0.20, co2: 1800},
	},
	domain.ToleranceAggressive: {
		{name: "Growth Stocks", weight: 0.50, ret: 0.12, vol: 0.25, co2: 3000},
		{name: "Tech Stocks", weight: 0.25, ret: 0.15, vol: 0.30, co2: 2500},
		{name: "Emerging Markets", weight: 0.15, ret: 0.10, vol: 0.28, co2: 3500},
		{name: "Commodities", weight: 0.10, ret: 0.08, vol: 0.22, co2: 4000},
	},
}

var greenAllocations = map[domain.RiskTolerance][]allocation{
	domain.ToleranceConservative: {
		{name: "Green Bonds", weight: 0.50, ret: 0.045, vol: 0.06, co2: 50, esgRating: "AAA"},
		{name: "Renewable Energy Funds", weight: 0.25, ret: 0.07, vol: 0.12, co2: 100, esgRating: "AA"},
		{name: "ESG Index Funds", weight: 0.15, ret: 0.065, vol: 0.10, co2: 200, esgRating: "AAA"},
		{name: "Sustainable Real Estate", weight: 0.10, ret: 0.055, vol: 0.09, co2: 150, esgRating: "AA"},
	},
	domain.ToleranceModerate: {
		{name: "ESG Equity Funds", weight: 0.35, ret: 0.085, vol: 0.14, co2: 180, esgRating: "AA"},
		{name: "Green Bonds", weight: 0.30, ret: 0.045, vol: 0.06, co2: 50, esgRating: "AAA"},
		{name: "Renewable Infrastructure", weight: 0.20, ret: 0.075, vol: 0.11, co2: 120, esgRating: "AAA"},
		{name: "Sustainable Agriculture", weight: 0.15, ret: 0.070, vol: 0.13, co2: 100, esgRating: "AA"},
	},
	domain.ToleranceAggressive: {
		{name: "Clean Tech Stocks", weight: 0.40, ret: 0.13, vol: 0.24, co2: 150, esgRating: "AA"},
		{name: "Solar Energy Companies", weight: 0.25, ret: 0.14, vol: 0.26, co2: 80, esgRating: "AAA"},
		{name: "Electric Vehicle Sector", weight: 0.20, ret: 0.12, vol: 0.23, co2: 200, esgRating: "AA"},
		{name: "Carbon Credit Futures", weight: 0.15, ret: 0.10, vol: 0.28, co2: 50, esgRating: "AA"},
	},
}

func tableFor(tolerance domain.RiskTolerance, green bool) []allocation {
	tables := traditionalAllocations
	if green {
		tables = greenAllocations
	}
	if rows, ok := tables[tolerance]; ok {
		return rows
	}
	return tables[domain.ToleranceModerate]
}
