package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one mobile-money transaction from the applicant's history.
type Payment struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

// GreenActivities holds the applicant's sustainability signals.
type GreenActivities struct {
	HasSolarPanels       bool     `json:"has_solar_panels"`
	SolarGenerationKWH   float64  `json:"solar_generation_kwh"`
	OrganicFarming       bool     `json:"organic_farming"`
	SustainablePractices []string `json:"sustainable_practices"`
}

// SocialData holds community and reference signals.
type SocialData struct {
	CommunityMember    bool `json:"community_member"`
	BusinessReferences int  `json:"business_references"`
	YearsInCommunity   int  `json:"years_in_community"`
}

// Application is a micro-loan request built from alternative data sources.
type Application struct {
	ApplicantID     string          `json:"applicant_id"`
	Amount          float64         `json:"amount"`
	Purpose         string          `json:"purpose"`
	MobilePayments  []Payment       `json:"mobile_payment_history"`
	GreenActivities GreenActivities `json:"green_activities"`
	SocialData      SocialData      `json:"social_data"`
}

// Assessment is the alternative-data credit result.
type Assessment struct {
	ApplicantID      string    `json:"applicant_id"`
	Timestamp        time.Time `json:"timestamp"`
	CompositeScore   float64   `json:"alternative_credit_score"`
	MobileScore      float64   `json:"mobile_payment_score"`
	GreenScore       float64   `json:"green_activity_score"`
	SocialScore      float64   `json:"social_score"`
	Approved         bool      `json:"approved"`
	AssessmentMethod string    `json:"assessment_method"`
}

// Terms is the priced loan offer. Money figures use decimal arithmetic.
type Terms struct {
	ApprovedAmount   decimal.Decimal `json:"approved_amount"`
	InterestRate     float64         `json:"interest_rate"`
	TermMonths       int             `json:"loan_term_months"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	TotalRepayment   decimal.Decimal `json:"total_repayment"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	FirstPaymentDate string          `json:"first_payment_date"`
	SpecialTerms     []string        `json:"special_terms"`
}
