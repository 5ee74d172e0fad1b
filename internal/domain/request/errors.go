package request

import "errors"

// ErrInvalidRequest indicates an unknown request kind or a missing required
// field. Surfaced immediately; no partial work is performed.
var ErrInvalidRequest = errors.New("invalid request")
