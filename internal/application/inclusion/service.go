package inclusion

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Jeffy123-zhu/ai-green/internal/application"
	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/loan"
)

const (
	baseInterestRate = 0.08
	loanTermMonths   = 24
)

// Service implements micro-loan use-cases over alternative data sources.
// Scoring is deterministic; simulated inputs belong to the provider
// boundary, not here.
type Service struct {
	Clock application.Clock
}

// AssessAlternative scores an applicant from mobile payment, green
// activity, and social signals instead of traditional credit history.
func (s *Service) AssessAlternative(app *domain.Application) *domain.Assessment {
	mobile := MobilePaymentScore(app.MobilePayments)
	green := GreenActivityScore(app.GreenActivities)
	social := SocialScore(app.SocialData)

	composite := round2(mobile*0.50 + green*0.30 + social*0.20)

	return &domain.Assessment{
		ApplicantID:      app.ApplicantID,
		Timestamp:        s.Clock.Now(),
		CompositeScore:   composite,
		MobileScore:      mobile,
		GreenScore:       green,
		SocialScore:      social,
		Approved:         composite >= 55,
		AssessmentMethod: "alternative_data",
	}
}

// MobilePaymentScore rewards transaction frequency and typical size.
// An empty history scores zero.
func MobilePaymentScore(payments []domain.Payment) float64 {
	if len(payments) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range payments {
		total += p.Amount
	}
	avg := total / float64(len(payments))

	frequencyScore := math.Min(50, float64(len(payments))*2)
	amountScore := math.Min(50, avg/10)
	return math.Min(100, frequencyScore+amountScore)
}

// GreenActivityScore rewards verifiable sustainability signals.
func GreenActivityScore(g domain.GreenActivities) float64 {
	score := 0.0
	if g.HasSolarPanels {
		score += 30
		score += math.Min(20, g.SolarGenerationKWH/100)
	}
	if g.OrganicFarming {
		score += 25
	}
	score += math.Min(25, float64(len(g.SustainablePractices))*8)
	return math.Min(100, score)
}

// SocialScore starts from a neutral base and rewards community standing.
func SocialScore(s domain.SocialData) float64 {
	score := 50.0
	if s.CommunityMember {
		score += 15
	}
	score += math.Min(20, float64(s.BusinessReferences)*5)
	score += math.Min(15, float64(s.YearsInCommunity)*2)
	return math.Min(100, score)
}

// Terms prices a loan offer from the alternative assessment. Money math
// runs on decimals; a 24-month annuity schedule is assumed.
func (s *Service) Terms(a *domain.Assessment, amount float64) *domain.Terms {
	rate, amountFactor := priceFor(a.CompositeScore)

	principal := decimal.NewFromFloat(amount)
	ceiling := principal.Mul(decimal.NewFromFloat(amountFactor))

	one := decimal.NewFromInt(1)
	months := decimal.NewFromInt(loanTermMonths)
	monthlyRate := decimal.NewFromFloat(rate).Div(decimal.NewFromInt(12))
	growth := one.Add(monthlyRate).Pow(months)
	payment := principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one))

	total := payment.Mul(months)

	return &domain.Terms{
		ApprovedAmount:   decimal.Min(principal, ceiling).Round(2),
		InterestRate:     rate,
		TermMonths:       loanTermMonths,
		MonthlyPayment:   payment.Round(2),
		TotalRepayment:   total.Round(2),
		TotalInterest:    total.Sub(principal).Round(2),
		FirstPaymentDate: s.Clock.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		SpecialTerms:     specialTerms(a.GreenScore),
	}
}

func priceFor(score float64) (rate, amountFactor float64) {
	switch {
	case score >= 80:
		return baseInterestRate - 0.02, 1.2
	case score >= 65:
		return baseInterestRate, 1.0
	case score >= 55:
		return baseInterestRate + 0.02, 0.8
	default:
		return baseInterestRate + 0.04, 0.5
	}
}

func specialTerms(greenScore float64) []string {
	terms := []string{}
	if greenScore > 70 {
		terms = append(terms,
			"Green bonus: 0.5% interest rate reduction for maintaining solar generation",
			"Carbon credit: Earn credits for verified emission reductions",
		)
	}
	if greenScore > 50 {
		terms = append(terms, "Flexible repayment: Adjust payments based on seasonal income")
	}
	terms = append(terms, "Financial literacy: Free access to online financial education")
	return terms
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
