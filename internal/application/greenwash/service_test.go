package greenwash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/greenwash"
)

func bundleWith(c entitydata.CarbonRecord, e entitydata.ESGRecord) *entitydata.Bundle {
	return &entitydata.Bundle{
		Entity: entitydata.EntityRef{ID: "co-2001", Kind: entitydata.KindCompany},
		Carbon: c,
		ESG:    e,
	}
}

func TestDetectCleanProfile(t *testing.T) {
	report := Detect(bundleWith(
		entitydata.CarbonRecord{TotalCO2Tons: 1000, Trend: -0.02, RenewablePct: 60},
		entitydata.ESGRecord{Environmental: 60},
	))
	require.NotNil(t, report)

	assert.Zero(t, report.RiskIndex)
	assert.Equal(t, domain.LevelLow, report.RiskLevel)
	assert.Empty(t, report.Anomalies)
	assert.Zero(t, report.AnomalyCount)
	assert.Empty(t, report.Recommendations)
}

func TestDetectRenewableMismatch(t *testing.T) {
	// high environmental score, almost no renewable energy
	report := Detect(bundleWith(
		entitydata.CarbonRecord{TotalCO2Tons: 1000, RenewablePct: 10},
		entitydata.ESGRecord{Environmental: 72},
	))

	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "score_renewable_mismatch", report.Anomalies[0].Type)
	assert.Equal(t, domain.SeverityHigh, report.Anomalies[0].Severity)
	assert.Equal(t, 45.0, report.RiskIndex)
	assert.Equal(t, domain.LevelModerate, report.RiskLevel)
	assert.Equal(t, 1, report.AnomalyCount)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Recommendations[0], "Monitor emissions")
}

func TestDetectHighScoreHighEmissionsOnly(t *testing.T) {
	report := Detect(bundleWith(
		entitydata.CarbonRecord{TotalCO2Tons: 4000, RenewablePct: 50},
		entitydata.ESGRecord{Environmental: 85},
	))

	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "high_score_high_emissions", report.Anomalies[0].Type)
	assert.Equal(t, domain.SeverityMedium, report.Anomalies[0].Severity)
	// a single medium-weight anomaly stays below the moderate threshold
	assert.Equal(t, 30.0, report.RiskIndex)
	assert.Equal(t, domain.LevelLow, report.RiskLevel)
	assert.Empty(t, report.Recommendations)
}

func TestDetectAllRulesFire(t *testing.T) {
	report := Detect(bundleWith(
		entitydata.CarbonRecord{TotalCO2Tons: 4000, Trend: 0.10, RenewablePct: 10},
		entitydata.ESGRecord{Environmental: 85},
	))

	assert.Len(t, report.Anomalies, 3)
	assert.Equal(t, 3, report.AnomalyCount)
	// weight sum 8 would map to 120; the index caps at 100
	assert.Equal(t, 100.0, report.RiskIndex)
	assert.Equal(t, domain.LevelHigh, report.RiskLevel)
	require.Len(t, report.Recommendations, 3)
	assert.Contains(t, report.Recommendations[0], "third-party verification")
	assert.Contains(t, report.Recommendations[1], "supply chain")
}

func TestDetectThresholdsAreStrict(t *testing.T) {
	// every value sits exactly on a rule boundary; nothing fires
	report := Detect(bundleWith(
		entitydata.CarbonRecord{TotalCO2Tons: 3000, Trend: 0.05, RenewablePct: 20},
		entitydata.ESGRecord{Environmental: 70},
	))
	assert.Zero(t, report.AnomalyCount)
	assert.Equal(t, domain.LevelLow, report.RiskLevel)
}
