package request

// Kind enum for orchestrated request types
type Kind string

const (
	KindCreditAssessment      Kind = "credit_assessment"
	KindPortfolioOptimization Kind = "portfolio_optimization"
	KindMicroLoan             Kind = "micro_loan"
	KindGreenwashingCheck     Kind = "greenwashing_check"
)

// Known reports whether k is a routable request kind.
func (k Kind) Known() bool {
	switch k {
	case KindCreditAssessment, KindPortfolioOptimization, KindMicroLoan, KindGreenwashingCheck:
		return true
	}
	return false
}
