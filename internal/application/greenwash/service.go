package greenwash

import (
	"math"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/greenwash"
)

// rule is one fixed greenwashing indicator. Thresholds, severities, and
// weights are calibration constants; the table order is the reporting order.
type rule struct {
	matches func(c entitydata.CarbonRecord, e entitydata.ESGRecord) bool
	anomaly domain.Anomaly
	weight  int
}

var rules = []rule{
	{
		matches: func(c entitydata.CarbonRecord, e entitydata.ESGRecord) bool {
			return e.Environmental > 80 && c.TotalCO2Tons > 3000
		},
		anomaly: domain.Anomaly{
			Type:        "high_score_high_emissions",
			Description: "Environmental score is high but emissions are substantial",
			Severity:    domain.SeverityMedium,
		},
		weight: 2,
	},
	{
		matches: func(c entitydata.CarbonRecord, e entitydata.ESGRecord) bool {
			return e.Environmental > 70 && c.RenewablePct < 20
		},
		anomaly: domain.Anomaly{
			Type:        "score_renewable_mismatch",
			Description: "High environmental score but low renewable energy usage",
			Severity:    domain.SeverityHigh,
		},
		weight: 3,
	},
	{
		matches: func(c entitydata.CarbonRecord, e entitydata.ESGRecord) bool {
			return c.Trend > 0.05 && e.Environmental > 75
		},
		anomaly: domain.Anomaly{
			Type:        "increasing_emissions_high_score",
			Description: "Emissions increasing while maintaining high environmental score",
			Severity:    domain.SeverityHigh,
		},
		weight: 3,
	},
}

// Detect applies the rule set against one bundle snapshot. Rules are
// independent; the index depends only on which ones fired.
func Detect(bundle *entitydata.Bundle) *domain.AnomalyReport {
	anomalies := []domain.Anomaly{}
	weightSum := 0
	for _, r := range rules {
		if r.matches(bundle.Carbon, bundle.ESG) {
			anomalies = append(anomalies, r.anomaly)
			weightSum += r.weight
		}
	}

	riskIndex := math.Min(100, float64(weightSum)*15)

	return &domain.AnomalyReport{
		RiskIndex:       riskIndex,
		RiskLevel:       level(riskIndex),
		Anomalies:       anomalies,
		AnomalyCount:    len(anomalies),
		Recommendations: recommendations(riskIndex),
	}
}

func level(index float64) domain.RiskLevel {
	switch {
	case index > 60:
		return domain.LevelHigh
	case index > 30:
		return domain.LevelModerate
	default:
		return domain.LevelLow
	}
}

func recommendations(index float64) []string {
	recs := []string{}
	if index > 50 {
		recs = append(recs,
			"Request third-party verification of carbon claims",
			"Conduct detailed supply chain emissions audit",
		)
	}
	if index > 30 {
		recs = append(recs, "Monitor emissions data more frequently")
	}
	return recs
}
