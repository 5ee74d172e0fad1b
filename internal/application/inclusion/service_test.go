package inclusion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/loan"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testService() *Service {
	return &Service{Clock: fixedClock{t: testTime}}
}

func sampleApplication() *domain.Application {
	payments := make([]domain.Payment, 20)
	for i := range payments {
		payments[i] = domain.Payment{Amount: 150, Type: "merchant"}
	}
	return &domain.Application{
		ApplicantID:    "farmer-001",
		Amount:         10_000,
		Purpose:        "irrigation",
		MobilePayments: payments,
		GreenActivities: domain.GreenActivities{
			HasSolarPanels:       true,
			SolarGenerationKWH:   500,
			OrganicFarming:       true,
			SustainablePractices: []string{"drip_irrigation", "crop_rotation"},
		},
		SocialData: domain.SocialData{
			CommunityMember:    true,
			BusinessReferences: 3,
			YearsInCommunity:   10,
		},
	}
}

func TestMobilePaymentScore(t *testing.T) {
	assert.Zero(t, MobilePaymentScore(nil))

	// 20 payments of 150: frequency 40, amount 15
	assert.InDelta(t, 55.0, MobilePaymentScore(sampleApplication().MobilePayments), 1e-9)

	heavy := make([]domain.Payment, 30)
	for i := range heavy {
		heavy[i] = domain.Payment{Amount: 10_000}
	}
	assert.Equal(t, 100.0, MobilePaymentScore(heavy))
}

func TestGreenActivityScore(t *testing.T) {
	assert.Zero(t, GreenActivityScore(domain.GreenActivities{}))

	// solar 30 + generation 5 + organic 25 + practices 16
	assert.InDelta(t, 76.0, GreenActivityScore(sampleApplication().GreenActivities), 1e-9)

	maxed := domain.GreenActivities{
		HasSolarPanels:       true,
		SolarGenerationKWH:   5000,
		OrganicFarming:       true,
		SustainablePractices: []string{"a", "b", "c", "d"},
	}
	assert.Equal(t, 100.0, GreenActivityScore(maxed))
}

func TestSocialScore(t *testing.T) {
	assert.Equal(t, 50.0, SocialScore(domain.SocialData{}))

	// base 50 + member 15 + references 15 + tenure 15
	assert.InDelta(t, 95.0, SocialScore(sampleApplication().SocialData), 1e-9)

	maxed := domain.SocialData{CommunityMember: true, BusinessReferences: 10, YearsInCommunity: 30}
	assert.Equal(t, 100.0, SocialScore(maxed))
}

func TestAssessAlternative(t *testing.T) {
	got := testService().AssessAlternative(sampleApplication())
	require.NotNil(t, got)

	// 55*0.5 + 76*0.3 + 95*0.2
	assert.Equal(t, 69.3, got.CompositeScore)
	assert.True(t, got.Approved)
	assert.Equal(t, "farmer-001", got.ApplicantID)
	assert.Equal(t, "alternative_data", got.AssessmentMethod)
	assert.Equal(t, testTime, got.Timestamp)
	assert.InDelta(t, 55.0, got.MobileScore, 1e-9)
	assert.InDelta(t, 76.0, got.GreenScore, 1e-9)
	assert.InDelta(t, 95.0, got.SocialScore, 1e-9)
}

func TestAssessAlternativeRejectsThinFile(t *testing.T) {
	got := testService().AssessAlternative(&domain.Application{ApplicantID: "ghost-1"})

	// no signals at all: only the neutral social base contributes
	assert.Equal(t, 10.0, got.CompositeScore)
	assert.False(t, got.Approved)
}

func TestTermsStandardBand(t *testing.T) {
	a := &domain.Assessment{CompositeScore: 69.3, GreenScore: 76}
	terms := testService().Terms(a, 10_000)
	require.NotNil(t, terms)

	assert.Equal(t, 0.08, terms.InterestRate)
	assert.Equal(t, 24, terms.TermMonths)
	assert.Equal(t, "10000", terms.ApprovedAmount.String())
	assert.Equal(t, "452.27", terms.MonthlyPayment.String())
	assert.Equal(t, "10854.55", terms.TotalRepayment.String())
	assert.Equal(t, "854.55", terms.TotalInterest.String())
	assert.Equal(t, "2025-07-01", terms.FirstPaymentDate)
}

func TestTermsApprovedAmountCeiling(t *testing.T) {
	a := &domain.Assessment{CompositeScore: 60}
	terms := testService().Terms(a, 10_000)

	// 55-65 band lends at most 0.8x the requested amount
	assert.Equal(t, 0.1, terms.InterestRate)
	assert.Equal(t, "8000", terms.ApprovedAmount.String())
}

func TestPriceForBands(t *testing.T) {
	cases := []struct {
		score  float64
		rate   float64
		factor float64
	}{
		{85, 0.06, 1.2},
		{80, 0.06, 1.2},
		{79.99, 0.08, 1.0},
		{65, 0.08, 1.0},
		{64.99, 0.1, 0.8},
		{55, 0.1, 0.8},
		{54.99, 0.12, 0.5},
		{0, 0.12, 0.5},
	}
	for _, tc := range cases {
		rate, factor := priceFor(tc.score)
		assert.InDelta(t, tc.rate, rate, 1e-9, "score %.2f", tc.score)
		assert.Equal(t, tc.factor, factor, "score %.2f", tc.score)
	}
}

func TestSpecialTerms(t *testing.T) {
	strong := specialTerms(76)
	require.Len(t, strong, 4)
	assert.Contains(t, strong[0], "Green bonus")
	assert.Contains(t, strong[3], "financial education")

	mid := specialTerms(60)
	require.Len(t, mid, 2)
	assert.Contains(t, mid[0], "Flexible repayment")

	weak := specialTerms(30)
	require.Len(t, weak, 1)
	assert.Contains(t, weak[0], "Financial literacy")
}

func TestEducationLookup(t *testing.T) {
	got := Education("savings", "beginner")
	require.NotNil(t, got)
	assert.Equal(t, "savings", got.Topic)
	assert.Equal(t, "beginner", got.Level)
	assert.Contains(t, got.Content, "10%")
	assert.Len(t, got.NextSteps, 3)
	assert.Len(t, got.Resources, 3)
}

func TestEducationDefaultsToBeginner(t *testing.T) {
	got := Education("credit", "")
	assert.Equal(t, "beginner", got.Level)
	assert.Contains(t, got.Content, "borrowed money")
}

func TestEducationUnknownTopic(t *testing.T) {
	got := Education("quantum_finance", "advanced")
	assert.Equal(t, "Content not available", got.Content)
}
