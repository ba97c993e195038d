package reporting

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Dated is a record placed on the submission time axis.
type Dated interface {
	SubmittedAt() time.Time
}

// Delivering is a dated record carrying store distribution lines.
type Delivering interface {
	Dated
	Deliveries() []models.Store
}

// ShopSummary accumulates deliveries made to one shop.
type ShopSummary struct {
	Deliveries int     `json:"deliveries"`
	TotalQty   float64 `json:"totalQty"`
}

// ShopRow is a ShopSummary labelled with its shop name.
type ShopRow struct {
	Shop string `json:"shop"`
	ShopSummary
}

// DayBucket holds the records submitted on one UTC calendar day.
type DayBucket[R any] struct {
	Date    string `json:"date"`
	Records []R    `json:"records"`
}

// RecordLaborCost sums the labor costs of one record.
func RecordLaborCost(record models.InventoryRecord) float64 {
	return laborCost(record).InexactFloat64()
}

// TotalLaborCost sums RecordLaborCost over records.
func TotalLaborCost(records []models.InventoryRecord) float64 {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(laborCost(rec))
	}
	return total.InexactFloat64()
}

// RecordDeliveryCount counts the store lines naming a shop.
func RecordDeliveryCount[R Delivering](record R) int {
	count := 0
	for _, s := range record.Deliveries() {
		if s.IsDelivery() {
			count++
		}
	}
	return count
}

// RecordDeliveryQty sums qty over the store lines naming a shop.
func RecordDeliveryQty[R Delivering](record R) float64 {
	return deliveryQty(record).InexactFloat64()
}

// TotalDeliveryCount sums RecordDeliveryCount over records.
func TotalDeliveryCount[R Delivering](records []R) int {
	total := 0
	for _, rec := range records {
		total += RecordDeliveryCount(rec)
	}
	return total
}

// TotalDeliveryQty sums RecordDeliveryQty over records.
func TotalDeliveryQty[R Delivering](records []R) float64 {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(deliveryQty(rec))
	}
	return total.InexactFloat64()
}

// GroupByCalendarDay buckets records by the UTC date of their submission,
// newest day first. Records without a submission time are left out. Within a
// bucket records keep their input order.
func GroupByCalendarDay[R Dated](records []R) []DayBucket[R] {
	index := make(map[string]int)
	buckets := make([]DayBucket[R], 0)

	for _, rec := range records {
		ts := rec.SubmittedAt()
		if ts.IsZero() {
			continue
		}
		key := models.DayKey(ts)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, DayBucket[R]{Date: key})
		}
		buckets[i].Records = append(buckets[i].Records, rec)
	}

	// YYYY-MM-DD keys are fixed width, so string order is date order.
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date > buckets[j].Date
	})
	return buckets
}

// PerShopSummary accumulates deliveries per trimmed shop name. Names match
// exactly, so "Shop A" and "shop a" are different shops.
func PerShopSummary[R Delivering](records []R) map[string]ShopSummary {
	type acc struct {
		count int
		qty   decimal.Decimal
	}
	shops := make(map[string]*acc)

	for _, rec := range records {
		for _, s := range rec.Deliveries() {
			if !s.IsDelivery() {
				continue
			}
			name := s.ShopName()
			a, ok := shops[name]
			if !ok {
				a = &acc{qty: decimal.Zero}
				shops[name] = a
			}
			a.count++
			a.qty = a.qty.Add(toDecimal(s.Qty))
		}
	}

	out := make(map[string]ShopSummary, len(shops))
	for name, a := range shops {
		out[name] = ShopSummary{Deliveries: a.count, TotalQty: a.qty.InexactFloat64()}
	}
	return out
}

// SortedShops flattens a PerShopSummary result ordered by shop name.
func SortedShops(summary map[string]ShopSummary) []ShopRow {
	rows := make([]ShopRow, 0, len(summary))
	for name, s := range summary {
		rows = append(rows, ShopRow{Shop: name, ShopSummary: s})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Shop < rows[j].Shop
	})
	return rows
}

func laborCost(record models.InventoryRecord) decimal.Decimal {
	total := decimal.Zero
	for _, l := range record.Labors {
		total = total.Add(toDecimal(l.Cost))
	}
	return total
}

func deliveryQty[R Delivering](record R) decimal.Decimal {
	total := decimal.Zero
	for _, s := range record.Deliveries() {
		if s.IsDelivery() {
			total = total.Add(toDecimal(s.Qty))
		}
	}
	return total
}

// toDecimal converts a stored number; NaN and infinities from legacy documents count as zero.
func toDecimal(n models.Number) decimal.Decimal {
	v := n.Float64()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
