package reporting

import (
	"fmt"
	"time"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Source selects which collection a delivery report reads.
type Source string

const (
	SourceInventory Source = "inventory"
	SourceDry       Source = "dry"
)

// ParseSource validates a source query value; empty means inventory.
func ParseSource(value string) (Source, error) {
	switch Source(value) {
	case "", SourceInventory:
		return SourceInventory, nil
	case SourceDry:
		return SourceDry, nil
	default:
		return "", fmt.Errorf("%w: unknown source %q", models.ErrValidation, value)
	}
}

// PeriodInfo describes the reporting month.
type PeriodInfo struct {
	models.Period
	Month string `json:"month"`
	Label string `json:"label"`
}

func newPeriodInfo(p models.Period) PeriodInfo {
	return PeriodInfo{Period: p, Month: p.Key(), Label: p.Label()}
}

// LaborRow is one record of the warehouse log with its labor cost.
type LaborRow struct {
	Record    models.InventoryRecord `json:"record"`
	LaborCost float64                `json:"laborCost"`
}

// LaborDay is a calendar day of the warehouse log.
type LaborDay struct {
	Date          string     `json:"date"`
	Records       []LaborRow `json:"records"`
	DayLaborTotal float64    `json:"dayLaborTotal"`
}

// WarehouseLog is the month view of labor costs grouped by day.
type WarehouseLog struct {
	Period      PeriodInfo `json:"period"`
	RecordCount int        `json:"recordCount"`
	LaborTotal  float64    `json:"laborTotal"`
	Days        []LaborDay `json:"days"`
}

// BuildWarehouseLog aggregates records already filtered to period.
func BuildWarehouseLog(period models.Period, records []models.InventoryRecord) WarehouseLog {
	buckets := GroupByCalendarDay(records)
	days := make([]LaborDay, 0, len(buckets))

	for _, b := range buckets {
		rows := make([]LaborRow, 0, len(b.Records))
		for _, rec := range b.Records {
			rows = append(rows, LaborRow{Record: rec, LaborCost: RecordLaborCost(rec)})
		}
		days = append(days, LaborDay{
			Date:          b.Date,
			Records:       rows,
			DayLaborTotal: TotalLaborCost(b.Records),
		})
	}

	return WarehouseLog{
		Period:      newPeriodInfo(period),
		RecordCount: len(records),
		LaborTotal:  TotalLaborCost(records),
		Days:        days,
	}
}

// DeliveryLine is one store line naming a shop.
type DeliveryLine struct {
	Time time.Time `json:"time"`
	Shop string    `json:"shop"`
	Qty  float64   `json:"qty"`
}

// DeliveryDay summarises one calendar day of deliveries.
type DeliveryDay struct {
	Date          string         `json:"date"`
	DeliveryCount int            `json:"deliveryCount"`
	TotalQty      float64        `json:"totalQty"`
	Shops         []ShopRow      `json:"shops"`
	Lines         []DeliveryLine `json:"lines"`
}

// DeliveryReport is the month view of shop deliveries.
type DeliveryReport struct {
	Period        PeriodInfo    `json:"period"`
	Source        Source        `json:"source"`
	DeliveryCount int           `json:"deliveryCount"`
	TotalQty      float64       `json:"totalQty"`
	Shops         []ShopRow     `json:"shops"`
	Days          []DeliveryDay `json:"days"`
}

// BuildDeliveryReport aggregates records already filtered to period.
func BuildDeliveryReport[R Delivering](period models.Period, source Source, records []R) DeliveryReport {
	buckets := GroupByCalendarDay(records)
	days := make([]DeliveryDay, 0, len(buckets))

	for _, b := range buckets {
		days = append(days, DeliveryDay{
			Date:          b.Date,
			DeliveryCount: TotalDeliveryCount(b.Records),
			TotalQty:      TotalDeliveryQty(b.Records),
			Shops:         SortedShops(PerShopSummary(b.Records)),
			Lines:         deliveryLines(b.Records),
		})
	}

	return DeliveryReport{
		Period:        newPeriodInfo(period),
		Source:        source,
		DeliveryCount: TotalDeliveryCount(records),
		TotalQty:      TotalDeliveryQty(records),
		Shops:         SortedShops(PerShopSummary(records)),
		Days:          days,
	}
}

// deliveryLines lists the store lines of records in record order, skipping
// blank shops.
func deliveryLines[R Delivering](records []R) []DeliveryLine {
	lines := make([]DeliveryLine, 0)
	for _, rec := range records {
		for _, s := range rec.Deliveries() {
			if !s.IsDelivery() {
				continue
			}
			lines = append(lines, DeliveryLine{
				Time: rec.SubmittedAt().UTC(),
				Shop: s.ShopName(),
				Qty:  toDecimal(s.Qty).InexactFloat64(),
			})
		}
	}
	return lines
}

// Dashboard is the admin landing summary for a month.
type Dashboard struct {
	Period           PeriodInfo `json:"period"`
	LaborTotal       float64    `json:"laborTotal"`
	DeliveryCount    int        `json:"deliveryCount"`
	DryDeliveryCount int        `json:"dryDeliveryCount"`
}

// BuildDashboard combines the month's inventory and dry records.
// DeliveryCount counts the inventory store lines, DryDeliveryCount the dry collection.
func BuildDashboard(period models.Period, inventory []models.InventoryRecord, dry []models.DryRecord) Dashboard {
	return Dashboard{
		Period:           newPeriodInfo(period),
		LaborTotal:       TotalLaborCost(inventory),
		DeliveryCount:    TotalDeliveryCount(inventory),
		DryDeliveryCount: TotalDeliveryCount(dry),
	}
}
