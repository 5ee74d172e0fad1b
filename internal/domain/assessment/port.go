package assessment

import "context"

// Repository port (interface for report persistence)
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, id ReportID) (*Report, error)
	Latest(ctx context.Context, entityID string, limit int) ([]*Report, error)
	Paginate(ctx context.Context, page, pageSize int) (*PaginatedReports, error)
}

// ReportArchive port (interface for archiving the rendered report document)
type ReportArchive interface {
	UploadJSON(ctx context.Context, key string, payload []byte) (string, error)
}
