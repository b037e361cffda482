package store

import (
	"context"

	"sportsmeet-portal/internal/models"
)

// Store is the spreadsheet-backed registration storage.
type Store interface {
	Name() string

	// Submit stores a validated roster snapshot and returns the message to show the manager.
	Submit(ctx context.Context, sub models.Submission) (message string, err error)

	// Export returns every stored registration row.
	Export(ctx context.Context) (models.Table, error)
}
