package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
)

func riskWithComposite(score float64) *assessment.RiskAssessment {
	return &assessment.RiskAssessment{CompositeScore: score}
}

func TestRateCombinesTraditionalAndCarbon(t *testing.T) {
	got := Rate(riskWithComposite(66.4), 100.0)
	require.NotNil(t, got)

	// 66.4*0.6 + 100*0.4
	assert.Equal(t, 79.84, got.CombinedScore)
	assert.Equal(t, assessment.RatingAA, got.Letter)
	assert.Equal(t, -0.01, got.RateAdjustment)
	assert.Equal(t, 66.4, got.TraditionalScore)
	assert.Equal(t, 100.0, got.CarbonScore)
}

func TestRateBands(t *testing.T) {
	cases := []struct {
		traditional float64
		carbon      float64
		letter      assessment.RatingLetter
		adjustment  float64
	}{
		{90, 80, assessment.RatingAAA, -0.02},
		{80, 80, assessment.RatingAAA, -0.02},
		{70, 70, assessment.RatingAA, -0.01},
		{60, 60, assessment.RatingA, 0},
		{50, 50, assessment.RatingBBB, 0.01},
		{40, 40, assessment.RatingBB, 0.02},
		{0, 0, assessment.RatingBB, 0.02},
	}
	for _, tc := range cases {
		got := Rate(riskWithComposite(tc.traditional), tc.carbon)
		assert.Equal(t, tc.letter, got.Letter, "traditional %.0f carbon %.0f", tc.traditional, tc.carbon)
		assert.Equal(t, tc.adjustment, got.RateAdjustment, "traditional %.0f carbon %.0f", tc.traditional, tc.carbon)
	}
}

func TestRecommendationsLowCarbon(t *testing.T) {
	recs := Recommendations(&assessment.CreditRating{CarbonScore: 40, CombinedScore: 65})
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "renewable energy")
	assert.Contains(t, recs[1], "carbon reduction roadmap")
}

func TestRecommendationsLowCombined(t *testing.T) {
	recs := Recommendations(&assessment.CreditRating{CarbonScore: 60, CombinedScore: 55})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "ESG reporting transparency")
}

func TestRecommendationsBothLow(t *testing.T) {
	recs := Recommendations(&assessment.CreditRating{CarbonScore: 30, CombinedScore: 45})
	assert.Len(t, recs, 3)
}

func TestRecommendationsHealthyProfile(t *testing.T) {
	recs := Recommendations(&assessment.CreditRating{CarbonScore: 85, CombinedScore: 82})
	assert.Empty(t, recs)
}
