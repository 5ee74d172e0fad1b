package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Jeffy123-zhu/ai-green/internal/application"
	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/advisor"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
)

// Service turns stored assessment reports into AI-written advisories.
type Service struct {
	Client  domain.Client
	Reports assessment.Repository
	Repo    domain.Repository
	Clock   application.Clock
}

// Narrate loads a report, asks the AI client for a narrative, and stores
// the result for auditing and retrieval.
func (s *Service) Narrate(ctx context.Context, reportID string) (*domain.Narrative, error) {
	report, err := s.Reports.Get(ctx, assessment.ReportID(reportID))
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report %s: %w", reportID, err)
	}

	result, err := s.Client.Narrate(ctx, string(payload))
	if err != nil {
		return nil, err
	}

	n := &domain.Narrative{
		ID:        domain.NarrativeID(uuid.New().String()),
		ReportID:  reportID,
		EntityID:  report.EntityID,
		Result:    result,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("save narrative: %w", err)
	}
	return n, nil
}

// Latest returns the most recent narrative for a report.
func (s *Service) Latest(ctx context.Context, reportID string) (*domain.Narrative, error) {
	return s.Repo.LatestByReport(ctx, reportID)
}
