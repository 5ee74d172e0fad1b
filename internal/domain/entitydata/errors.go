package entitydata

import "errors"

// ErrSourceUnavailable indicates one upstream source failed or timed out.
// Recovered locally: the aggregator substitutes an empty record and lowers
// the data quality score.
var ErrSourceUnavailable = errors.New("data source unavailable")

// ErrNoDataAvailable indicates every upstream source failed for an entity.
var ErrNoDataAvailable = errors.New("no data available for entity")
