package rating

import (
	"math"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
)

// Rate combines creditworthiness with the standalone carbon performance
// figure into a letter rating and interest-rate adjustment. The traditional
// operand is the assessment's composite score, which is the credit score
// rescaled to the 0-100 rating scale.
func Rate(risk *assessment.RiskAssessment, carbonScore float64) *assessment.CreditRating {
	traditional := risk.CompositeScore
	combined := round2(traditional*0.6 + carbonScore*0.4)

	letter, adjustment := band(combined)
	return &assessment.CreditRating{
		Letter:           letter,
		CombinedScore:    combined,
		TraditionalScore: traditional,
		CarbonScore:      carbonScore,
		RateAdjustment:   adjustment,
	}
}

func band(combined float64) (assessment.RatingLetter, float64) {
	switch {
	case combined >= 80:
		return assessment.RatingAAA, -0.02
	case combined >= 70:
		return assessment.RatingAA, -0.01
	case combined >= 60:
		return assessment.RatingA, 0
	case combined >= 50:
		return assessment.RatingBBB, 0.01
	default:
		return assessment.RatingBB, 0.02
	}
}

// Recommendations returns the advisory strings a rating triggers. The
// thresholds are contract; the wording is presentation.
func Recommendations(r *assessment.CreditRating) []string {
	var recs []string
	if r.CarbonScore < 50 {
		recs = append(recs,
			"Consider implementing renewable energy sources to improve carbon score",
			"Develop a carbon reduction roadmap to access better financing terms",
		)
	}
	if r.CombinedScore < 60 {
		recs = append(recs, "Improve ESG reporting transparency to enhance investor confidence")
	}
	return recs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
