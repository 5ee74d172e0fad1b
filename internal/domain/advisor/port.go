package advisor

import "context"

// Client port for the AI backend
type Client interface {
	Narrate(ctx context.Context, reportJSON string) (string, error)
}

// Repository port for persisting and querying narratives
type Repository interface {
	Save(ctx context.Context, n *Narrative) error
	LatestByReport(ctx context.Context, reportID string) (*Narrative, error)
}
