package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Save insert/update assessment report
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO credit_assessments
(id, entity_id, entity_kind, carbon_score, composite_score, credit_score,
 risk_category, rating, risk_json, rating_json, recommendations_json,
 data_quality, report_url, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,
        $7,$8,$9,$10,$11,
        $12,$13,$14,$15)
ON CONFLICT (id) DO UPDATE SET
 carbon_score = EXCLUDED.carbon_score,
 composite_score = EXCLUDED.composite_score,
 credit_score = EXCLUDED.credit_score,
 risk_category = EXCLUDED.risk_category,
 rating = EXCLUDED.rating,
 risk_json = EXCLUDED.risk_json,
 rating_json = EXCLUDED.rating_json,
 recommendations_json = EXCLUDED.recommendations_json,
 report_url = EXCLUDED.report_url,
 status = EXCLUDED.status;`

	entity := stringOrDash(rep.EntityID)
	kind := stringOrDash(string(rep.EntityKind))
	status := stringOrDash(string(rep.Status))
	created := rep.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	var (
		composite float64
		credit    int
		category  string
		letter    string
	)
	riskJSON := "{}"
	if rep.Risk != nil {
		composite = rep.Risk.CompositeScore
		credit = rep.Risk.CreditScore
		category = string(rep.Risk.Category)
		b, err := json.Marshal(rep.Risk)
		if err != nil {
			return fmt.Errorf("encoding risk: %w", err)
		}
		riskJSON = string(b)
	}
	ratingJSON := "{}"
	if rep.Rating != nil {
		letter = string(rep.Rating.Letter)
		b, err := json.Marshal(rep.Rating)
		if err != nil {
			return fmt.Errorf("encoding rating: %w", err)
		}
		ratingJSON = string(b)
	}
	recsJSON := "[]"
	if len(rep.Recommendations) > 0 {
		b, err := json.Marshal(rep.Recommendations)
		if err != nil {
			return fmt.Errorf("encoding recommendations: %w", err)
		}
		recsJSON = string(b)
	}

	_, err := r.db.ExecContext(ctx, q,
		rep.ID, entity, kind, rep.CarbonScore, composite, credit,
		category, letter, riskJSON, ratingJSON, recsJSON,
		rep.DataQuality, rep.ReportURL, status, created,
	)
	return err
}

// Get by ID
func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	const q = `
SELECT id, entity_id, entity_kind, carbon_score, risk_json, rating_json,
       recommendations_json, data_quality, report_url, status, created_at
FROM credit_assessments
WHERE id=$1
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, id)

	var rep domain.Report
	var riskJSON, ratingJSON, recsJSON string
	if err := row.Scan(
		&rep.ID, &rep.EntityID, &rep.EntityKind, &rep.CarbonScore,
		&riskJSON, &ratingJSON, &recsJSON,
		&rep.DataQuality, &rep.ReportURL, &rep.Status, &rep.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeReportDetails(&rep, riskJSON, ratingJSON, recsJSON); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Latest reports, optionally scoped to one entity
func (r *ReportRepository) Latest(ctx context.Context, entityID string, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
SELECT id, entity_id, entity_kind, carbon_score, risk_json, rating_json,
       recommendations_json, data_quality, report_url, status, created_at
FROM credit_assessments`

	args := []interface{}{}
	next := 1
	if entityID != "" {
		query += fmt.Sprintf("\nWHERE entity_id=$%d", next)
		args = append(args, entityID)
		next++
	}
	query += fmt.Sprintf("\nORDER BY created_at DESC, id DESC LIMIT $%d;", next)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Report
	for rows.Next() {
		var rep domain.Report
		var riskJSON, ratingJSON, recsJSON string
		if err := rows.Scan(
			&rep.ID, &rep.EntityID, &rep.EntityKind, &rep.CarbonScore,
			&riskJSON, &ratingJSON, &recsJSON,
			&rep.DataQuality, &rep.ReportURL, &rep.Status, &rep.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := decodeReportDetails(&rep, riskJSON, ratingJSON, recsJSON); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}

// Paginate with offset + limit (classic pagination)
func (r *ReportRepository) Paginate(ctx context.Context, page, pageSize int) (*domain.PaginatedReports, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, entity_id, entity_kind, carbon_score, risk_json, rating_json,
       recommendations_json, data_quality, report_url, status, created_at
FROM credit_assessments
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		var rep domain.Report
		var riskJSON, ratingJSON, recsJSON string
		if err := rows.Scan(
			&rep.ID, &rep.EntityID, &rep.EntityKind, &rep.CarbonScore,
			&riskJSON, &ratingJSON, &recsJSON,
			&rep.DataQuality, &rep.ReportURL, &rep.Status, &rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := decodeReportDetails(&rep, riskJSON, ratingJSON, recsJSON); err != nil {
			return nil, err
		}
		reports = append(reports, &rep)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM credit_assessments").Scan(&total); err != nil {
		return nil, fmt.Errorf("getting total count: %w", err)
	}

	return &domain.PaginatedReports{
		Data:       reports,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// decodeReportDetails rebuilds the nested structures from the JSON columns.
func decodeReportDetails(rep *domain.Report, riskJSON, ratingJSON, recsJSON string) error {
	if riskJSON != "" && riskJSON != "{}" && riskJSON != "null" {
		var risk domain.RiskAssessment
		if err := json.Unmarshal([]byte(riskJSON), &risk); err != nil {
			return fmt.Errorf("decoding risk: %w", err)
		}
		rep.Risk = &risk
	}
	if ratingJSON != "" && ratingJSON != "{}" && ratingJSON != "null" {
		var rating domain.CreditRating
		if err := json.Unmarshal([]byte(ratingJSON), &rating); err != nil {
			return fmt.Errorf("decoding rating: %w", err)
		}
		rep.Rating = &rating
	}
	if recsJSON != "" && recsJSON != "null" {
		if err := json.Unmarshal([]byte(recsJSON), &rep.Recommendations); err != nil {
			return fmt.Errorf("decoding recommendations: %w", err)
		}
	}
	return nil
}
