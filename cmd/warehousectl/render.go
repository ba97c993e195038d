package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/mamadbah2/warehouse/internal/service/reporting"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func qty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderDashboard(out io.Writer, d reporting.Dashboard) error {
	tw := newTable(out)
	fmt.Fprintf(tw, "Month\t%s\n", d.Period.Label)
	fmt.Fprintf(tw, "Labor cost\t%s\n", money(d.LaborTotal))
	fmt.Fprintf(tw, "Deliveries\t%d\n", d.DeliveryCount)
	fmt.Fprintf(tw, "Dry deliveries\t%d\n", d.DryDeliveryCount)
	return tw.Flush()
}

func renderWarehouseLog(out io.Writer, log reporting.WarehouseLog) error {
	tw := newTable(out)
	fmt.Fprintln(tw, "DATE\tSTART\tEND\tLABORS\tCOST")
	for _, day := range log.Days {
		for _, row := range day.Records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				day.Date, row.Record.StartTime, row.Record.EndTime, int(row.Record.LaborCount), money(row.LaborCost))
		}
		fmt.Fprintf(tw, "%s\t\t\tday total\t%s\n", day.Date, money(day.DayLaborTotal))
	}
	fmt.Fprintf(tw, "%s\t\t\tmonth total\t%s\n", log.Period.Month, money(log.LaborTotal))
	return tw.Flush()
}

func renderDeliveries(out io.Writer, r reporting.DeliveryReport) error {
	tw := newTable(out)
	fmt.Fprintf(tw, "SHOP (%s)\tDELIVERIES\tQTY\n", r.Source)
	for _, s := range r.Shops {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Shop, s.Deliveries, qty(s.TotalQty))
	}
	fmt.Fprintf(tw, "total\t%d\t%s\n", r.DeliveryCount, qty(r.TotalQty))
	return tw.Flush()
}
