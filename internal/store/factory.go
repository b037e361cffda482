package store

import (
	"context"
	"fmt"

	"sportsmeet-portal/internal/config"
	"sportsmeet-portal/internal/sheets"
	"sportsmeet-portal/internal/store/script"
)

func NewStore(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendScript:
		return script.New(cfg.GoogleScriptURL, cfg.StoreTimeout), nil
	case config.BackendSheets:
		c, err := sheets.New(ctx, cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}
