package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Filename is the attachment name for an exported report.
func Filename(user string, now time.Time) string {
	return fmt.Sprintf("user_report_%s_%s.csv", user, now.Format(time.DateOnly))
}

func htg(centimes int64) string {
	return fmt.Sprintf("HTG %.2f", float64(centimes)/100)
}

// WriteCSV renders the report as a downloadable text file: a human-readable
// summary block followed by comma-separated rows for orders, sales and
// activities.
func WriteCSV(w io.Writer, rep *Report, generatedAt time.Time) error {
	header := fmt.Sprintf(
		"User Report - %s\nGenerated: %s\n\nSummary\nTotal Orders: %s\nTotal Sales: %s\nTotal Transactions: %d\nTotal Unique Activities: %d\n\n",
		rep.User,
		generatedAt.Format(time.DateTime),
		htg(rep.Summary.OrderTotal),
		htg(rep.Summary.SalesTotal),
		rep.Summary.Transactions,
		rep.Summary.UniqueActivities,
	)

	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Type", "ID/Action", "Details", "Amount/Status"}); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for _, o := range rep.Orders {
		row := []string{
			o.OrderDate.Format(time.DateOnly),
			"Order",
			o.ID,
			"Customer: " + o.CustomerName,
			htg(o.FinalAmount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing order row: %w", err)
		}
	}

	for _, sl := range rep.Sales {
		row := []string{
			sl.Date.Format(time.DateOnly),
			"Sale",
			sl.ID,
			fmt.Sprintf("Items: %d", len(sl.Items)),
			htg(sl.Total),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing sale row: %w", err)
		}
	}

	for _, rec := range rep.Activities {
		row := []string{
			rec.Timestamp.Format(time.DateOnly),
			"Activity",
			string(rec.Action),
			rec.Details,
			"-",
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing activity row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
