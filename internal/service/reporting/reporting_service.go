package reporting

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// WarehouseSheet is the spreadsheet tab mirrored by SyncWarehouseSheet.
const WarehouseSheet = "Warehouse"

// InventoryLister reads inventory records of a month, newest first.
type InventoryLister interface {
	ListInventory(ctx context.Context, period models.Period) ([]models.InventoryRecord, error)
}

// DryLister reads dry records, optionally restricted to a month.
type DryLister interface {
	ListDry(ctx context.Context, period *models.Period) ([]models.DryRecord, error)
}

// SheetSink receives the full content of a spreadsheet tab.
type SheetSink interface {
	ReplaceSheet(ctx context.Context, sheetName string, rows [][]interface{}) error
}

// Service builds the admin reports on top of the record repositories.
type Service struct {
	inventory InventoryLister
	dry       DryLister
	logger    *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(inventory InventoryLister, dry DryLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{inventory: inventory, dry: dry, logger: logger}
}

// Dashboard loads both collections for the month concurrently.
func (s *Service) Dashboard(ctx context.Context, period models.Period) (Dashboard, error) {
	var (
		inventory []models.InventoryRecord
		dry       []models.DryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.inventory.ListInventory(gctx, period)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		inventory = records
		return nil
	})
	g.Go(func() error {
		records, err := s.dry.ListDry(gctx, &period)
		if err != nil {
			return fmt.Errorf("load dry records: %w", err)
		}
		dry = records
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	return BuildDashboard(period, inventory, dry), nil
}

// WarehouseLog returns the month's labor log grouped by day.
func (s *Service) WarehouseLog(ctx context.Context, period models.Period) (WarehouseLog, error) {
	records, err := s.inventory.ListInventory(ctx, period)
	if err != nil {
		return WarehouseLog{}, fmt.Errorf("load inventory: %w", err)
	}
	return BuildWarehouseLog(period, records), nil
}

// Deliveries returns the month's per-shop delivery report for source.
func (s *Service) Deliveries(ctx context.Context, period models.Period, source Source) (DeliveryReport, error) {
	switch source {
	case SourceDry:
		records, err := s.dry.ListDry(ctx, &period)
		if err != nil {
			return DeliveryReport{}, fmt.Errorf("load dry records: %w", err)
		}
		return BuildDeliveryReport(period, source, records), nil
	case SourceInventory, "":
		records, err := s.inventory.ListInventory(ctx, period)
		if err != nil {
			return DeliveryReport{}, fmt.Errorf("load inventory: %w", err)
		}
		return BuildDeliveryReport(period, SourceInventory, records), nil
	default:
		return DeliveryReport{}, fmt.Errorf("%w: unknown source %q", models.ErrValidation, source)
	}
}

// Summary renders the dashboard as a short operator message.
func (s *Service) Summary(ctx context.Context, period models.Period) (string, error) {
	dash, err := s.Dashboard(ctx, period)
	if err != nil {
		return "", err
	}
	return FormatSummary(dash), nil
}

// FormatSummary renders a dashboard as plain text.
func FormatSummary(d Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Warehouse summary for %s\n", d.Period.Label)
	fmt.Fprintf(&b, "Labor cost: %s\n", formatMoney(d.LaborTotal))
	fmt.Fprintf(&b, "Deliveries: %d\n", d.DeliveryCount)
	fmt.Fprintf(&b, "Dry deliveries: %d", d.DryDeliveryCount)
	return b.String()
}

// SyncWarehouseSheet overwrites the warehouse tab with the month's export rows.
func (s *Service) SyncWarehouseSheet(ctx context.Context, period models.Period, sink SheetSink) error {
	if sink == nil {
		return fmt.Errorf("sheet sink is nil")
	}

	records, err := s.inventory.ListInventory(ctx, period)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, headerCells())
	for _, row := range ExportRows(records) {
		rows = append(rows, row.Cells())
	}

	if err := sink.ReplaceSheet(ctx, WarehouseSheet, rows); err != nil {
		return fmt.Errorf("write %s sheet: %w", WarehouseSheet, err)
	}

	s.logger.Info("warehouse sheet synced",
		zap.String("month", period.Key()),
		zap.Int("records", len(records)),
	)
	return nil
}
