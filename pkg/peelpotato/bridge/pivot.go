package bridge

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
)

// AddPivotTable builds a pivot table at dest over the data block: one
// row field plus a summed data field per listed column label. Field
// labels must match the data block's header row.
func (w *Workbook) AddPivotTable(data, dest models.ResolvedRange, rowField string, dataFields []string) error {
	if !w.SheetExists(data.Sheet) {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, data.Sheet)
	}

	opts := &excelize.PivotTableOptions{
		DataRange:       data.Ref(),
		PivotTableRange: dest.Ref(),
		Rows:            []excelize.PivotTableField{{Data: rowField}},
		RowGrandTotals:  true,
		ColGrandTotals:  true,
		ShowDrill:       true,
	}
	for _, field := range dataFields {
		opts.Data = append(opts.Data, excelize.PivotTableField{
			Data:     field,
			Name:     "Sum of " + field,
			Subtotal: "Sum",
		})
	}
	if err := w.f.AddPivotTable(opts); err != nil {
		return fmt.Errorf("add pivot table at %s: %w", dest, err)
	}
	log.Printf("[Bridge] added pivot table at %s (%d data fields)", dest, len(dataFields))
	return nil
}
