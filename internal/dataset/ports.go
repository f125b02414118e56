package dataset

import "context"

// Ports for inbound dataset adapters.
type (
	// Source loads the full day table. Every call reads the backing store
	// again; implementations must not cache.
	Source interface {
		Load(ctx context.Context) (*Table, error)
	}

	// Pinger is implemented by sources that can cheaply check they are
	// reachable without loading the data.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
