package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/warehouse/internal/config"
)

// Repository mirrors report rows into a spreadsheet tab.
type Repository interface {
	ReplaceSheet(ctx context.Context, sheetName string, rows [][]interface{}) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewFromService(service, cfg.SpreadsheetID, logger), nil
}

// NewFromService wraps an already configured Sheets client.
func NewFromService(service *sheetsapi.Service, spreadsheetID string, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}
}

// ReplaceSheet clears the tab and writes rows starting at A1.
func (r *GoogleSheetRepository) ReplaceSheet(ctx context.Context, sheetName string, rows [][]interface{}) error {
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		return fmt.Errorf("sheetName must not be empty")
	}

	if _, err := r.service.Spreadsheets.Values.Clear(r.spreadsheetID, sheetName, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return nil
	}

	target := sheetName + "!A1"
	call := r.service.Spreadsheets.Values.Update(r.spreadsheetID, target, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("update range %s: %w", target, err)
	}

	r.logger.Debug("sheet replaced", zap.String("sheet", sheetName), zap.Int("rows", len(rows)))
	return nil
}
