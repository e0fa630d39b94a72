package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// ExportPeriodAggregate renders the full (unpaginated) period aggregate of
// a journal as a spreadsheet: one row per fine bucket, with its coarse
// bucket repeated in the first column.
func ExportPeriodAggregate(ctx context.Context, journalId int, unit AggregateUnit) (*excelize.File, error) {
	data, err := GetPeriodAggregate(ctx, journalId, unit, 0, 1<<30)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, err
	}

	// Add headers
	f.SetCellValue(exportSheet, "A1", "Period")
	f.SetCellValue(exportSheet, "B1", "SubPeriod")
	f.SetCellValue(exportSheet, "C1", "Trades")
	f.SetCellValue(exportSheet, "D1", "Result")

	// Add data
	row := 2
	for _, bucket := range data.Buckets {
		for _, item := range bucket.Items {
			f.SetCellValue(exportSheet, "A"+fmt.Sprint(row), bucket.Period)
			f.SetCellValue(exportSheet, "B"+fmt.Sprint(row), item.Period)
			f.SetCellValue(exportSheet, "C"+fmt.Sprint(row), item.Count)
			f.SetCellValue(exportSheet, "D"+fmt.Sprint(row), item.Result.String())
			row++
		}
	}

	return f, nil
}
