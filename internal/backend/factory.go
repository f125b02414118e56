package backend

import (
	"context"
	"fmt"
	"log/slog"

	"bikeshare/internal/dataset/csvfile"
	"bikeshare/internal/sheets"
	"bikeshare/internal/sheets/google"
	"bikeshare/internal/storage"
)

// SheetsDialer opens a values reader for the configured spreadsheet.
type SheetsDialer func(ctx context.Context, config Config) (sheets.ValuesReader, error)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
	dial   SheetsDialer
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithSheetsDialer replaces the Google Sheets client constructor.
func WithSheetsDialer(d SheetsDialer) Option {
	return func(f *DefaultFactory) { f.dial = d }
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger, opts ...Option) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	f := &DefaultFactory{
		logger: logger,
		dial:   dialGoogle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func dialGoogle(ctx context.Context, config Config) (sheets.ValuesReader, error) {
	return google.New(ctx, config.GoogleSpreadsheetID, config.GoogleCredentials)
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		return f.createCSVBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createCSVBackend(config Config) (*BackendResult, error) {
	src := csvfile.New(config.DatasetPath)

	f.logger.Info("Initialized CSV backend", "path", src.Path)

	return &BackendResult{Source: src}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	store, err := storage.NewStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Source:  store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	reader, err := f.dial(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	src := sheets.NewSource(reader, config.GoogleSheetName)

	f.logger.Info("Initialized Google Sheets backend",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"sheet", config.GoogleSheetName)

	return &BackendResult{Source: src}, nil
}
