package sheets

import "context"

// Ports for spreadsheet adapters.
type (
	// ValuesReader returns the cell values of an A1 range, row-major.
	// Trailing empty cells may be omitted from a row.
	ValuesReader interface {
		ReadValues(ctx context.Context, rng string) ([][]any, error)
	}
)
