package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appadvisor "github.com/Jeffy123-zhu/ai-green/internal/application/advisor"
	"github.com/Jeffy123-zhu/ai-green/internal/application/inclusion"
	"github.com/Jeffy123-zhu/ai-green/internal/application/orchestrator"
	advdomain "github.com/Jeffy123-zhu/ai-green/internal/domain/advisor"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
	loandomain "github.com/Jeffy123-zhu/ai-green/internal/domain/loan"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/request"
	"github.com/Jeffy123-zhu/ai-green/internal/middleware"
)

type Router struct {
	orch       *orchestrator.Service
	advisorSvc *appadvisor.Service
	history    assessment.Repository
	hub        *Hub
}

// NewRouter builds the HTTP surface. advisorSvc and history may be nil;
// their endpoints are simply not registered then. An empty corsOrigins
// allows every origin.
func NewRouter(orch *orchestrator.Service, advisorSvc *appadvisor.Service, history assessment.Repository, hub *Hub, health http.HandlerFunc, corsOrigins []string) http.Handler {
	r := &Router{orch: orch, advisorSvc: advisorSvc, history: history, hub: hub}
	mux := chi.NewRouter()

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/", r.wrap(r.handleRoot))
	if health == nil {
		health = middleware.LivenessHandler
	}
	mux.Get("/api/v1/health", health)
	mux.Get("/metrics", middleware.MetricsHandler)
	if hub != nil {
		mux.Get("/ws", hub.HandleWebSocket)
	}

	mux.Route("/api/v1", func(rt chi.Router) {
		rt.Get("/system/status", r.wrap(r.handleSystemStatus))
		rt.Post("/credit/assess", r.wrap(r.handleAssessCredit))
		rt.Post("/portfolio/optimize", r.wrap(r.handleOptimizePortfolio))
		rt.Post("/loan/apply", r.wrap(r.handleLoanApply))
		rt.Post("/greenwashing/check", r.wrap(r.handleGreenwashingCheck))
		rt.Get("/education/content", r.wrap(r.handleEducation))

		if r.history != nil {
			rt.Get("/assessments", r.wrap(r.handleAssessmentList))
			rt.Get("/assessments/latest", r.wrap(r.handleAssessmentLatest))
			rt.Get("/assessments/{id}", r.wrap(r.handleAssessmentGet))
		}
		if r.advisorSvc != nil {
			rt.Post("/advisor/narrative", r.wrap(r.handleNarrate))
			rt.Get("/advisor/narrative/{report_id}", r.wrap(r.handleNarrativeLatest))
		}
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			writeError(w, err)
		}
	}
}

// writeError maps domain sentinels onto status codes and always answers
// with a failed envelope, never a success shape with nulls.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, request.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, sql.ErrNoRows):
		status = http.StatusNotFound
	case errors.Is(err, advdomain.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
	case errors.Is(err, entitydata.ErrNoDataAvailable):
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "failed",
		"error":  err.Error(),
	})
}

// broadcast tags the payload with a timestamp and fans it out, when a hub
// is attached.
func (r *Router) broadcast(eventType string, payload map[string]interface{}) {
	if r.hub == nil {
		return
	}
	payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	r.hub.Broadcast(eventType, payload)
}

// GET /
func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) error {
	resp := map[string]any{
		"service": "GreenPulse Credit Intelligence",
		"version": "1.0.0",
		"status":  "operational",
		"endpoints": map[string]string{
			"credit_assessment":      "POST /api/v1/credit/assess",
			"portfolio_optimization": "POST /api/v1/portfolio/optimize",
			"micro_loan":             "POST /api/v1/loan/apply",
			"greenwashing_check":     "POST /api/v1/greenwashing/check",
			"assessment_history":     "GET /api/v1/assessments",
			"advisor_narrative":      "POST /api/v1/advisor/narrative",
			"education":              "GET /api/v1/education/content",
			"system_status":          "GET /api/v1/system/status",
			"events":                 "GET /ws",
		},
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

// GET /api/v1/system/status
func (r *Router) handleSystemStatus(w http.ResponseWriter, req *http.Request) error {
	wsClients := 0
	if r.hub != nil {
		wsClients = r.hub.ClientCount()
	}
	resp := struct {
		orchestrator.SystemStatus
		WSClients int `json:"websocket_clients"`
	}{r.orch.Status(), wsClients}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

// POST /api/v1/credit/assess
// Body: {"entity_id": "...", "entity_type": "company|individual"}
func (r *Router) handleAssessCredit(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		EntityID   string `json:"entity_id"`
		EntityType string `json:"entity_type"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding body: %v: %w", err, request.ErrInvalidRequest)
	}
	if err := middleware.ValidateEntityID(body.EntityID); err != nil {
		return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
	}
	if err := middleware.ValidateEntityKind(body.EntityType); err != nil {
		return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
	}

	out, err := r.orch.Process(req.Context(), request.KindCreditAssessment, orchestrator.CreditAssessmentCommand{
		EntityID:   middleware.SanitizeString(body.EntityID),
		EntityKind: body.EntityType,
	})
	if err != nil {
		middleware.IncrementAssessmentsFailed()
		return err
	}
	res := out.(*orchestrator.CreditAssessmentResult)

	middleware.IncrementAssessments()
	r.broadcast("credit_assessment_complete", map[string]interface{}{
		"entity_id": res.EntityID,
	})

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// POST /api/v1/portfolio/optimize
// Body: {"capital": 100000, "risk_tolerance": "moderate", "target_return": 0.08}
func (r *Router) handleOptimizePortfolio(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Capital       float64 `json:"capital"`
		RiskTolerance string  `json:"risk_tolerance"`
		TargetReturn  float64 `json:"target_return"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding body: %v: %w", err, request.ErrInvalidRequest)
	}
	if err := middleware.ValidateCapital(body.Capital); err != nil {
		return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
	}
	if err := middleware.ValidateRiskTolerance(body.RiskTolerance); err != nil {
		return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
	}

	out, err := r.orch.Process(req.Context(), request.KindPortfolioOptimization, orchestrator.PortfolioCommand{
		Capital:       body.Capital,
		RiskTolerance: body.RiskTolerance,
		TargetReturn:  body.TargetReturn,
	})
	if err != nil {
		return err
	}
	res := out.(*orchestrator.PortfolioResult)

	middleware.IncrementPortfolios()
	r.broadcast("portfolio_optimized", map[string]interface{}{
		"capital": body.Capital,
	})

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// POST /api/v1/loan/apply
func (r *Router) handleLoanApply(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ApplicantID    string                     `json:"applicant_id"`
		Amount         float64                    `json:"amount"`
		Purpose        string                     `json:"purpose"`
		MobilePayments []loandomain.Payment       `json:"mobile_payment_history"`
		Green          loandomain.GreenActivities `json:"green_activities"`
		Social         loandomain.SocialData      `json:"social_data"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding body: %v: %w", err, request.ErrInvalidRequest)
	}
	if err := middleware.ValidateEntityID(body.ApplicantID); err != nil {
		return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
	}
	if err := middleware.ValidateLoanAmount(body.Amount); err != nil {
		return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
	}
	if body.Purpose == "" {
		body.Purpose = "business"
	}

	out, err := r.orch.Process(req.Context(), request.KindMicroLoan, orchestrator.MicroLoanCommand{
		ApplicantID:    middleware.SanitizeString(body.ApplicantID),
		Amount:         body.Amount,
		Purpose:        middleware.SanitizeString(body.Purpose),
		MobilePayments: body.MobilePayments,
		Green:          body.Green,
		Social:         body.Social,
	})
	if err != nil {
		return err
	}
	res := out.(*orchestrator.MicroLoanResult)

	middleware.IncrementLoans()
	r.broadcast("loan_processed", map[string]interface{}{
		"applicant_id": res.ApplicantID,
		"approved":     res.Approved,
	})

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// POST /api/v1/greenwashing/check
// Body: {"company_id": "..."}
func (r *Router) handleGreenwashingCheck(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		CompanyID string `json:"company_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding body: %v: %w", err, request.ErrInvalidRequest)
	}
	if err := middleware.ValidateEntityID(body.CompanyID); err != nil {
		return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
	}

	out, err := r.orch.Process(req.Context(), request.KindGreenwashingCheck, orchestrator.GreenwashingCommand{
		CompanyID: middleware.SanitizeString(body.CompanyID),
	})
	if err != nil {
		return err
	}
	res := out.(*orchestrator.GreenwashingResult)

	middleware.IncrementGreenwash()
	r.broadcast("greenwashing_check_complete", map[string]interface{}{
		"company_id": res.CompanyID,
		"risk_index": res.RiskIndex,
	})

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// GET /api/v1/assessments?page=&page_size=
func (r *Router) handleAssessmentList(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.history.Paginate(req.Context(), middleware.ValidatePage(page), middleware.ValidateLimit(size))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /api/v1/assessments/latest?entity_id=&limit=
func (r *Router) handleAssessmentLatest(w http.ResponseWriter, req *http.Request) error {
	entityID := req.URL.Query().Get("entity_id")
	if entityID != "" {
		if err := middleware.ValidateEntityID(entityID); err != nil {
			return fmt.Errorf("%v: %w", err, request.ErrInvalidRequest)
		}
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.history.Latest(req.Context(), entityID, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /api/v1/assessments/{id}
func (r *Router) handleAssessmentGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	report, err := r.history.Get(req.Context(), assessment.ReportID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(report)
}

// POST /api/v1/advisor/narrative
// Body: {"report_id": "<id>"}
func (r *Router) handleNarrate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ReportID string `json:"report_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding body: %v: %w", err, request.ErrInvalidRequest)
	}
	if body.ReportID == "" {
		return fmt.Errorf("report_id is required: %w", request.ErrInvalidRequest)
	}

	n, err := r.advisorSvc.Narrate(req.Context(), body.ReportID)
	if err != nil {
		return err
	}

	middleware.IncrementNarratives()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(n)
}

// GET /api/v1/advisor/narrative/{report_id}
func (r *Router) handleNarrativeLatest(w http.ResponseWriter, req *http.Request) error {
	reportID := chi.URLParam(req, "report_id")

	n, err := r.advisorSvc.Latest(req.Context(), reportID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(n)
}

// GET /api/v1/education/content?topic=&level=
func (r *Router) handleEducation(w http.ResponseWriter, req *http.Request) error {
	topic := req.URL.Query().Get("topic")
	level := req.URL.Query().Get("level")

	content := inclusion.Education(topic, level)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(content)
}
