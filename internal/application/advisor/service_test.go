package advisor

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Jeffy123-zhu/ai-green/internal/domain/advisor"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubClient struct {
	reply string
	err   error

	gotPrompt string
}

func (c *stubClient) Narrate(ctx context.Context, reportJSON string) (string, error) {
	c.gotPrompt = reportJSON
	return c.reply, c.err
}

type stubReports struct {
	report *assessment.Report
}

func (r *stubReports) Save(ctx context.Context, rep *assessment.Report) error { return nil }

func (r *stubReports) Get(ctx context.Context, id assessment.ReportID) (*assessment.Report, error) {
	if r.report == nil || r.report.ID != id {
		return nil, sql.ErrNoRows
	}
	return r.report, nil
}

func (r *stubReports) Latest(ctx context.Context, entityID string, limit int) ([]*assessment.Report, error) {
	return nil, nil
}

func (r *stubReports) Paginate(ctx context.Context, page, pageSize int) (*assessment.PaginatedReports, error) {
	return nil, nil
}

type stubNarratives struct {
	saved  []*domain.Narrative
	latest *domain.Narrative
}

func (s *stubNarratives) Save(ctx context.Context, n *domain.Narrative) error {
	s.saved = append(s.saved, n)
	return nil
}

func (s *stubNarratives) LatestByReport(ctx context.Context, reportID string) (*domain.Narrative, error) {
	if s.latest == nil {
		return nil, sql.ErrNoRows
	}
	return s.latest, nil
}

func storedReport() *assessment.Report {
	return &assessment.Report{
		ID:       "rep-1",
		EntityID: "co-1001",
		Status:   assessment.StatusSuccess,
	}
}

func TestNarrate(t *testing.T) {
	client := &stubClient{reply: `{"summary":"stable outlook"}`}
	repo := &stubNarratives{}
	svc := &Service{
		Client:  client,
		Reports: &stubReports{report: storedReport()},
		Repo:    repo,
		Clock:   fixedClock{t: testTime},
	}

	n, err := svc.Narrate(context.Background(), "rep-1")
	require.NoError(t, err)
	require.NotNil(t, n)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "rep-1", n.ReportID)
	assert.Equal(t, "co-1001", n.EntityID)
	assert.Equal(t, `{"summary":"stable outlook"}`, n.Result)
	assert.Equal(t, testTime, n.CreatedAt)

	// the client receives the rendered report, not just the id
	assert.Contains(t, client.gotPrompt, `"co-1001"`)

	require.Len(t, repo.saved, 1)
	assert.Same(t, n, repo.saved[0])
}

func TestNarrateUnknownReport(t *testing.T) {
	svc := &Service{
		Client:  &stubClient{reply: "{}"},
		Reports: &stubReports{},
		Repo:    &stubNarratives{},
		Clock:   fixedClock{t: testTime},
	}

	_, err := svc.Narrate(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestNarratePropagatesQuotaErrors(t *testing.T) {
	svc := &Service{
		Client:  &stubClient{err: domain.ErrQuotaExceeded},
		Reports: &stubReports{report: storedReport()},
		Repo:    &stubNarratives{},
		Clock:   fixedClock{t: testTime},
	}

	_, err := svc.Narrate(context.Background(), "rep-1")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestNarrateSaveFailure(t *testing.T) {
	svc := &Service{
		Client:  &stubClient{reply: "{}"},
		Reports: &stubReports{report: storedReport()},
		Repo:    &failingNarratives{},
		Clock:   fixedClock{t: testTime},
	}

	_, err := svc.Narrate(context.Background(), "rep-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save narrative")
}

type failingNarratives struct{}

func (failingNarratives) Save(ctx context.Context, n *domain.Narrative) error {
	return errors.New("disk full")
}

func (failingNarratives) LatestByReport(ctx context.Context, reportID string) (*domain.Narrative, error) {
	return nil, sql.ErrNoRows
}

func TestLatestDelegatesToRepository(t *testing.T) {
	want := &domain.Narrative{ID: "n-1", ReportID: "rep-1"}
	svc := &Service{Repo: &stubNarratives{latest: want}}

	got, err := svc.Latest(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Same(t, want, got)
}
