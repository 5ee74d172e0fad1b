package greenwash

// Severity enum
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskLevel enum
type RiskLevel string

const (
	LevelLow      RiskLevel = "low"
	LevelModerate RiskLevel = "moderate"
	LevelHigh     RiskLevel = "high"
)

// Anomaly is one rule-triggered inconsistency between claimed and measured
// sustainability behavior.
type Anomaly struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// AnomalyReport is the detector output for one bundle snapshot.
type AnomalyReport struct {
	RiskIndex       float64   `json:"risk_index"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Anomalies       []Anomaly `json:"anomalies"`
	AnomalyCount    int       `json:"anomaly_count"`
	Recommendations []string  `json:"recommendations"`
}
