package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format query value; empty means csv.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(value)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", models.ErrValidation, value)
	}
}

// ContentType returns the HTTP media type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

var exportHeader = []string{"Date", "Labor No", "Labor Total Cost", "Start", "End", "Rec", "Loading"}

func headerCells() []interface{} {
	cells := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		cells[i] = h
	}
	return cells
}

// ExportRow is one inventory record flattened for spreadsheets.
type ExportRow struct {
	Date       string
	LaborCount int
	LaborCost  float64
	Start      string
	End        string
	Receiving  string
	Loading    string
}

// ExportRows flattens records in the given order.
func ExportRows(records []models.InventoryRecord) []ExportRow {
	rows := make([]ExportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ExportRow{
			Date:       models.DayKey(rec.SubmittedDateTime),
			LaborCount: int(rec.LaborCount),
			LaborCost:  RecordLaborCost(rec),
			Start:      rec.StartTime,
			End:        rec.EndTime,
			Receiving:  formatItems(rec.Receiving),
			Loading:    formatItems(rec.Loading),
		})
	}
	return rows
}

// Strings renders the row as CSV fields.
func (r ExportRow) Strings() []string {
	return []string{
		r.Date,
		strconv.Itoa(r.LaborCount),
		formatMoney(r.LaborCost),
		r.Start,
		r.End,
		r.Receiving,
		r.Loading,
	}
}

// Cells renders the row as typed spreadsheet cells.
func (r ExportRow) Cells() []interface{} {
	return []interface{}{
		r.Date,
		r.LaborCount,
		formatMoney(r.LaborCost),
		r.Start,
		r.End,
		r.Receiving,
		r.Loading,
	}
}

// ExportFileName returns warehouse_YYYY_MM with the format extension.
func ExportFileName(period models.Period, format Format) string {
	return fmt.Sprintf("warehouse_%s.%s", period.Start.UTC().Format("2006_01"), format)
}

// WriteCSV writes the header and rows as CSV.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Strings()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the header and rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), WarehouseSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := headerCells()
	if err := f.SetSheetRow(WarehouseSheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := row.Cells()
		if err := f.SetSheetRow(WarehouseSheet, cell, &cells); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func formatItems(items []models.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		qty := strconv.FormatFloat(it.Qty.Float64(), 'f', -1, 64)
		unit := strings.TrimSpace(it.Unit)
		if unit == "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", name, qty))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s %s)", name, qty, unit))
	}
	return strings.Join(parts, "; ")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
