package assessment

import (
	"time"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

// ReportID identifier type
type ReportID string

// Status enum
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Aggregate Root: Report is one completed credit assessment, kept for
// auditing and retrieval.
type Report struct {
	ID              ReportID              `json:"id"`
	EntityID        string                `json:"entity_id"`
	EntityKind      entitydata.EntityKind `json:"entity_kind"`
	CarbonScore     float64               `json:"carbon_score"`
	Risk            *RiskAssessment       `json:"risk_analysis"`
	Rating          *CreditRating         `json:"credit_rating"`
	Recommendations []string              `json:"recommendations"`
	DataQuality     float64               `json:"data_quality_score"`
	Status          Status                `json:"status"`
	ReportURL       string                `json:"report_url,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}
