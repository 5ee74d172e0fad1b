package advisor

import "time"

// NarrativeID identifier type
type NarrativeID string

// Narrative is an AI-written advisory for a stored assessment report,
// kept for auditing and retrieval.
type Narrative struct {
	ID        NarrativeID `json:"id"`
	ReportID  string      `json:"report_id"`
	EntityID  string      `json:"entity_id"`
	Result    string      `json:"result"` // JSON string from the AI client
	CreatedAt time.Time   `json:"created_at"`
}
