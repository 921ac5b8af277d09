package export

import (
	"fmt"
	"io"

	"github.com/archplans/plan-portal/internal/analytics/service"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary    = "Summary"
	sheetCategories = "Categories"
	sheetRequests   = "Request Types"
	sheetMonthly    = "Monthly Uploads"
	sheetEngagement = "Engagement"
	sheetActivity   = "Recent Activity"
)

// WriteDashboardXLSX renders the dashboard as a workbook, one sheet per aggregate.
func WriteDashboardXLSX(w io.Writer, d *service.Dashboard) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	summary := [][]interface{}{
		{"metric", "value"},
		{"generated_at", d.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"year", d.Year},
		{"plans", d.Totals.Plans},
		{"inquiries", d.Totals.Inquiries},
		{"custom_requests", d.Totals.CustomRequests},
		{"views", d.Totals.Views},
		{"favorites", d.Totals.Favorites},
		{"plan_inquiries", d.Totals.PlanInquiries},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return err
	}

	if err := writeRows(f, sheetCategories, bucketRows("category", d.Categories)); err != nil {
		return err
	}
	if err := writeRows(f, sheetRequests, bucketRows("project_type", d.RequestTypes)); err != nil {
		return err
	}

	monthly := [][]interface{}{{"month", "uploads"}}
	for _, m := range d.MonthlyUploads {
		monthly = append(monthly, []interface{}{m.Month, m.Uploads})
	}
	if err := writeRows(f, sheetMonthly, monthly); err != nil {
		return err
	}

	engagement := [][]interface{}{{"plan", "views", "favorites", "inquiries"}}
	for _, e := range d.Engagement {
		engagement = append(engagement, []interface{}{e.Name, e.Views, e.Favorites, e.Inquiries})
	}
	if err := writeRows(f, sheetEngagement, engagement); err != nil {
		return err
	}

	activity := [][]interface{}{{"kind", "message", "when"}}
	for _, a := range d.RecentActivity {
		activity = append(activity, []interface{}{a.Kind, a.Message, a.Time})
	}
	if err := writeRows(f, sheetActivity, activity); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func bucketRows(label string, buckets []service.Bucket) [][]interface{} {
	rows := [][]interface{}{{label, "count"}}
	for _, b := range buckets {
		rows = append(rows, []interface{}{b.Name, b.Value})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
