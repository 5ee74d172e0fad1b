package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/advisor"
)

type NarrativeRepository struct{ db *sql.DB }

func NewNarrativeRepository(db *sql.DB) *NarrativeRepository {
	return &NarrativeRepository{db: db}
}

// Save inserts or updates an advisor narrative record
func (r *NarrativeRepository) Save(ctx context.Context, n *domain.Narrative) error {
	const q = `
INSERT INTO advisor_narratives
  (id, report_id, entity_id, result_json, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
  report_id=EXCLUDED.report_id,
  entity_id=EXCLUDED.entity_id,
  result_json=EXCLUDED.result_json;
`
	reportID := stringOrDash(n.ReportID)
	entityID := stringOrDash(n.EntityID)
	result := n.Result
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, n.ID, reportID, entityID, result, createdAt)
	return err
}

// LatestByReport returns the most recent narrative written for a report
func (r *NarrativeRepository) LatestByReport(ctx context.Context, reportID string) (*domain.Narrative, error) {
	const q = `
SELECT id, report_id, entity_id, result_json, created_at
FROM advisor_narratives
WHERE report_id=$1
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, reportID)

	var n domain.Narrative
	if err := row.Scan(&n.ID, &n.ReportID, &n.EntityID, &n.Result, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
