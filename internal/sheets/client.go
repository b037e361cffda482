package sheets

import (
	"context"
	"fmt"
	"os"
	"sync"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client stores registrations directly in a Google Sheets tab.
type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	sheet         string

	// headerMu serialises the empty-sheet check; headerReady is set once a header exists.
	headerMu    sync.Mutex
	headerReady bool
}

func New(ctx context.Context, serviceAccountJSONPath, spreadsheetID, sheet string) (*Client, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return NewWithService(srv, spreadsheetID, sheet), nil
}

func NewWithService(srv *sheetsv4.Service, spreadsheetID, sheet string) *Client {
	return &Client{srv: srv, spreadsheetID: spreadsheetID, sheet: sheet}
}

func (c *Client) Name() string { return "sheets" }
