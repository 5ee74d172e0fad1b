package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress uint64
	RequestsSuccess    uint64
	RequestsFailed     uint64
	AssessmentsTotal   uint64
	AssessmentsFailed  uint64
	PortfoliosTotal    uint64
	LoansTotal         uint64
	GreenwashTotal     uint64
	NarrativesTotal    uint64
	StartTime          time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementRequests increments total request counter
func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

// IncrementInProgress increments in-progress request counter
func IncrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, 1)
}

// DecrementInProgress decrements in-progress request counter
func DecrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0))
}

// IncrementSuccess increments successful request counter
func IncrementSuccess() {
	atomic.AddUint64(&globalMetrics.RequestsSuccess, 1)
}

// IncrementFailed increments failed request counter
func IncrementFailed() {
	atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
}

// IncrementAssessments increments completed credit assessments
func IncrementAssessments() {
	atomic.AddUint64(&globalMetrics.AssessmentsTotal, 1)
}

// IncrementAssessmentsFailed increments failed credit assessments
func IncrementAssessmentsFailed() {
	atomic.AddUint64(&globalMetrics.AssessmentsFailed, 1)
}

// IncrementPortfolios increments portfolio optimizations
func IncrementPortfolios() {
	atomic.AddUint64(&globalMetrics.PortfoliosTotal, 1)
}

// IncrementLoans increments micro-loan applications
func IncrementLoans() {
	atomic.AddUint64(&globalMetrics.LoansTotal, 1)
}

// IncrementGreenwash increments greenwashing checks
func IncrementGreenwash() {
	atomic.AddUint64(&globalMetrics.GreenwashTotal, 1)
}

// IncrementNarratives increments advisor narratives
func IncrementNarratives() {
	atomic.AddUint64(&globalMetrics.NarrativesTotal, 1)
}

// GetMetrics returns current metrics
func GetMetrics() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"requests_total":       atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_in_progress": atomic.LoadUint64(&globalMetrics.RequestsInProgress),
		"requests_success":     atomic.LoadUint64(&globalMetrics.RequestsSuccess),
		"requests_failed":      atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"assessments_total":    atomic.LoadUint64(&globalMetrics.AssessmentsTotal),
		"assessments_failed":   atomic.LoadUint64(&globalMetrics.AssessmentsFailed),
		"portfolios_total":     atomic.LoadUint64(&globalMetrics.PortfoliosTotal),
		"loans_total":          atomic.LoadUint64(&globalMetrics.LoansTotal),
		"greenwash_total":      atomic.LoadUint64(&globalMetrics.GreenwashTotal),
		"narratives_total":     atomic.LoadUint64(&globalMetrics.NarrativesTotal),
		"uptime_seconds":       time.Since(globalMetrics.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       m.Alloc,
			"total_alloc_bytes": m.TotalAlloc,
			"sys_bytes":         m.Sys,
			"num_gc":            m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		IncrementInProgress()
		defer DecrementInProgress()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			IncrementSuccess()
		} else {
			IncrementFailed()
		}
	})
}

// MetricsHandler returns metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetMetrics())
}
