package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Jeffy123-zhu/ai-green/internal/application"
	"github.com/Jeffy123-zhu/ai-green/internal/application/aggregation"
	appgw "github.com/Jeffy123-zhu/ai-green/internal/application/greenwash"
	"github.com/Jeffy123-zhu/ai-green/internal/application/inclusion"
	apppf "github.com/Jeffy123-zhu/ai-green/internal/application/portfolio"
	"github.com/Jeffy123-zhu/ai-green/internal/application/rating"
	"github.com/Jeffy123-zhu/ai-green/internal/application/scoring"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
	gwdomain "github.com/Jeffy123-zhu/ai-green/internal/domain/greenwash"
	loandomain "github.com/Jeffy123-zhu/ai-green/internal/domain/loan"
	pfdomain "github.com/Jeffy123-zhu/ai-green/internal/domain/portfolio"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/request"
)

// Service is the single entry point of the scoring pipeline. It routes per
// request kind, sequences the stages, shapes the response envelopes, and
// owns the in-memory request gauge and recent-results map surfaced by
// system status. History and Archive may be nil; both writes are
// best-effort and never fail a request.
type Service struct {
	Aggregator *aggregation.Service
	Inclusion  *inclusion.Service
	History    assessment.Repository
	Archive    assessment.ReportArchive
	Clock      application.Clock

	state *state
}

func NewService(agg *aggregation.Service, incl *inclusion.Service, history assessment.Repository, archive assessment.ReportArchive, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{
		Aggregator: agg,
		Inclusion:  incl,
		History:    history,
		Archive:    archive,
		Clock:      clock,
		state:      newState(),
	}
}

//
// ==== COMMANDS & RESULTS ====
//

type CreditAssessmentCommand struct {
	EntityID   string
	EntityKind string
}

type CreditAssessmentResult struct {
	ReportID        string                     `json:"report_id"`
	EntityID        string                     `json:"entity_id"`
	Timestamp       time.Time                  `json:"timestamp"`
	CarbonScore     float64                    `json:"carbon_score"`
	RiskAnalysis    *assessment.RiskAssessment `json:"risk_analysis"`
	CreditRating    *assessment.CreditRating   `json:"credit_rating"`
	Recommendations []string                   `json:"recommendations"`
	DataQuality     float64                    `json:"data_quality_score"`
	Status          string                     `json:"status"`
}

type GreenwashingCommand struct {
	CompanyID string
}

type GreenwashingResult struct {
	CompanyID       string             `json:"company_id"`
	Timestamp       time.Time          `json:"timestamp"`
	RiskIndex       float64            `json:"greenwashing_risk_index"`
	Anomalies       []gwdomain.Anomaly `json:"anomalies"`
	AnomalyCount    int                `json:"anomaly_count"`
	Recommendations []string           `json:"recommendations"`
	Status          string             `json:"status"`
}

type PortfolioCommand struct {
	Capital       float64
	RiskTolerance string
	TargetReturn  float64
}

type PortfolioResult struct {
	Timestamp      time.Time            `json:"timestamp"`
	Traditional    *pfdomain.Plan       `json:"traditional_portfolio"`
	Green          *pfdomain.Plan       `json:"green_portfolio"`
	Comparison     *pfdomain.Comparison `json:"carbon_comparison"`
	Recommendation string               `json:"recommendations"`
	Status         string               `json:"status"`
}

type MicroLoanCommand struct {
	ApplicantID    string
	Amount         float64
	Purpose        string
	MobilePayments []loandomain.Payment
	Green          loandomain.GreenActivities
	Social         loandomain.SocialData
}

type MicroLoanResult struct {
	ApplicantID string                 `json:"applicant_id"`
	Timestamp   time.Time              `json:"timestamp"`
	Assessment  *loandomain.Assessment `json:"assessment"`
	Terms       *loandomain.Terms      `json:"loan_terms"`
	Approved    bool                   `json:"approval_status"`
	Status      string                 `json:"status"`
}

//
// ==== USE CASES ====
//

// Process routes a request to its use-case. Unknown kinds and mismatched
// payloads fail fast with ErrInvalidRequest.
func (s *Service) Process(ctx context.Context, kind request.Kind, payload any) (any, error) {
	switch kind {
	case request.KindCreditAssessment:
		cmd, ok := payload.(CreditAssessmentCommand)
		if !ok {
			return nil, fmt.Errorf("credit assessment payload: %w", request.ErrInvalidRequest)
		}
		return s.AssessCredit(ctx, cmd)
	case request.KindGreenwashingCheck:
		cmd, ok := payload.(GreenwashingCommand)
		if !ok {
			return nil, fmt.Errorf("greenwashing payload: %w", request.ErrInvalidRequest)
		}
		return s.CheckGreenwashing(ctx, cmd)
	case request.KindPortfolioOptimization:
		cmd, ok := payload.(PortfolioCommand)
		if !ok {
			return nil, fmt.Errorf("portfolio payload: %w", request.ErrInvalidRequest)
		}
		return s.OptimizePortfolio(ctx, cmd)
	case request.KindMicroLoan:
		cmd, ok := payload.(MicroLoanCommand)
		if !ok {
			return nil, fmt.Errorf("micro loan payload: %w", request.ErrInvalidRequest)
		}
		return s.ProcessMicroLoan(ctx, cmd)
	default:
		return nil, fmt.Errorf("unknown request kind %q: %w", kind, request.ErrInvalidRequest)
	}
}

// AssessCredit runs Aggregate -> {Assess || CarbonPerformance} -> Rate and
// persists the resulting report.
func (s *Service) AssessCredit(ctx context.Context, cmd CreditAssessmentCommand) (*CreditAssessmentResult, error) {
	ref, err := entityRef(cmd.EntityID, cmd.EntityKind)
	if err != nil {
		return nil, err
	}

	done := s.state.begin()
	defer done()

	log.Printf("orchestrator kind=credit_assessment stage=aggregate entity=%s", ref.ID)
	bundle, err := s.Aggregator.Collect(ctx, ref)
	if err != nil {
		s.state.fail(request.KindCreditAssessment)
		return nil, err
	}

	var (
		risk        *assessment.RiskAssessment
		carbonScore float64
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		risk = scoring.Assess(bundle)
		return nil
	})
	g.Go(func() error {
		carbonScore = scoring.CarbonPerformance(bundle.Carbon)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.state.fail(request.KindCreditAssessment)
		return nil, err
	}

	credit := rating.Rate(risk, carbonScore)
	recs := rating.Recommendations(credit)

	report := &assessment.Report{
		ID:              assessment.ReportID(uuid.New().String()),
		EntityID:        ref.ID,
		EntityKind:      ref.Kind,
		CarbonScore:     carbonScore,
		Risk:            risk,
		Rating:          credit,
		Recommendations: recs,
		DataQuality:     bundle.DataQualityScore,
		Status:          assessment.StatusSuccess,
		CreatedAt:       s.Clock.Now(),
	}
	s.persistReport(ctx, report)

	res := &CreditAssessmentResult{
		ReportID:        string(report.ID),
		EntityID:        ref.ID,
		Timestamp:       report.CreatedAt,
		CarbonScore:     carbonScore,
		RiskAnalysis:    risk,
		CreditRating:    credit,
		Recommendations: recs,
		DataQuality:     bundle.DataQualityScore,
		Status:          string(assessment.StatusSuccess),
	}
	s.state.remember(string(report.ID), request.KindCreditAssessment, res)
	return res, nil
}

// CheckGreenwashing runs Aggregate -> Detect over a company bundle.
func (s *Service) CheckGreenwashing(ctx context.Context, cmd GreenwashingCommand) (*GreenwashingResult, error) {
	if cmd.CompanyID == "" {
		return nil, fmt.Errorf("company id required: %w", request.ErrInvalidRequest)
	}

	done := s.state.begin()
	defer done()

	ref := entitydata.EntityRef{ID: cmd.CompanyID, Kind: entitydata.KindCompany}
	log.Printf("orchestrator kind=greenwashing_check stage=aggregate entity=%s", ref.ID)
	bundle, err := s.Aggregator.Collect(ctx, ref)
	if err != nil {
		s.state.fail(request.KindGreenwashingCheck)
		return nil, err
	}

	report := appgw.Detect(bundle)

	res := &GreenwashingResult{
		CompanyID:       cmd.CompanyID,
		Timestamp:       s.Clock.Now(),
		RiskIndex:       report.RiskIndex,
		Anomalies:       report.Anomalies,
		AnomalyCount:    report.AnomalyCount,
		Recommendations: report.Recommendations,
		Status:          string(assessment.StatusSuccess),
	}
	s.state.remember(uuid.New().String(), request.KindGreenwashingCheck, res)
	return res, nil
}

// OptimizePortfolio builds both strategy plans plus the carbon comparison.
// A failed market snapshot degrades to plans without market context.
func (s *Service) OptimizePortfolio(ctx context.Context, cmd PortfolioCommand) (*PortfolioResult, error) {
	if cmd.Capital <= 0 {
		return nil, fmt.Errorf("capital must be positive: %w", request.ErrInvalidRequest)
	}
	tolerance := pfdomain.RiskTolerance(cmd.RiskTolerance)
	if tolerance == "" {
		tolerance = pfdomain.ToleranceModerate
	}

	done := s.state.begin()
	defer done()

	var market *entitydata.MarketSnapshot
	snap, err := s.Aggregator.CollectMarket(ctx)
	if err != nil {
		log.Printf("orchestrator kind=portfolio_optimization market unavailable err=%v", err)
	} else {
		market = &snap
	}

	trad := apppf.OptimizeTraditional(cmd.Capital, tolerance, market)
	green := apppf.OptimizeGreen(cmd.Capital, tolerance, market)
	comparison := apppf.Compare(trad, green)

	res := &PortfolioResult{
		Timestamp:   s.Clock.Now(),
		Traditional: trad,
		Green:       green,
		Comparison:  comparison,
		Recommendation: fmt.Sprintf(
			"Consider green portfolio for %.0f%% lower carbon footprint", comparison.ReductionPct),
		Status: string(assessment.StatusSuccess),
	}
	s.state.remember(uuid.New().String(), request.KindPortfolioOptimization, res)
	return res, nil
}

// ProcessMicroLoan assesses alternative credit and prices the offer.
func (s *Service) ProcessMicroLoan(ctx context.Context, cmd MicroLoanCommand) (*MicroLoanResult, error) {
	if cmd.ApplicantID == "" {
		return nil, fmt.Errorf("applicant id required: %w", request.ErrInvalidRequest)
	}
	if cmd.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", request.ErrInvalidRequest)
	}

	done := s.state.begin()
	defer done()

	app := &loandomain.Application{
		ApplicantID:     cmd.ApplicantID,
		Amount:          cmd.Amount,
		Purpose:         cmd.Purpose,
		MobilePayments:  cmd.MobilePayments,
		GreenActivities: cmd.Green,
		SocialData:      cmd.Social,
	}
	alt := s.Inclusion.AssessAlternative(app)
	terms := s.Inclusion.Terms(alt, cmd.Amount)

	res := &MicroLoanResult{
		ApplicantID: cmd.ApplicantID,
		Timestamp:   s.Clock.Now(),
		Assessment:  alt,
		Terms:       terms,
		Approved:    alt.Approved,
		Status:      string(assessment.StatusSuccess),
	}
	s.state.remember(uuid.New().String(), request.KindMicroLoan, res)
	return res, nil
}

// persistReport archives the rendered report, then saves the history row
// carrying the archive URL. Both are best-effort.
func (s *Service) persistReport(ctx context.Context, report *assessment.Report) {
	if s.Archive != nil {
		payload, err := json.Marshal(report)
		if err == nil {
			key := fmt.Sprintf("reports/%s/%s.json", report.EntityID, report.ID)
			url, aerr := s.Archive.UploadJSON(ctx, key, payload)
			if aerr != nil {
				log.Printf("orchestrator archive failed report=%s err=%v", report.ID, aerr)
			} else {
				report.ReportURL = url
			}
		}
	}
	if s.History != nil {
		if err := s.History.Save(ctx, report); err != nil {
			log.Printf("orchestrator history save failed report=%s err=%v", report.ID, err)
		}
	}
}

func entityRef(id, kind string) (entitydata.EntityRef, error) {
	if id == "" {
		return entitydata.EntityRef{}, fmt.Errorf("entity id required: %w", request.ErrInvalidRequest)
	}
	k := entitydata.EntityKind(kind)
	if k == "" {
		k = entitydata.KindCompany
	}
	if k != entitydata.KindCompany && k != entitydata.KindIndividual {
		return entitydata.EntityRef{}, fmt.Errorf("entity kind %q: %w", kind, request.ErrInvalidRequest)
	}
	return entitydata.EntityRef{ID: id, Kind: k}, nil
}
