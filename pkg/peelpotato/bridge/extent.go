package bridge

import (
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
)

// UsedExtent computes the bounding box of non-empty cells on a sheet.
// It is recomputed on every call; callers must not cache the result
// across sheet edits. An empty sheet returns a zero-valued (invalid)
// extent with no error; the resolver rejects it as unresolved.
func (w *Workbook) UsedExtent(sheet string) (models.UsedExtent, error) {
	rows, err := w.GetRows(sheet)
	if err != nil {
		return models.UsedExtent{}, err
	}

	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	if minRow < 0 {
		return models.UsedExtent{}, nil
	}

	return models.UsedExtent{
		FirstRow: minRow + 1,
		LastRow:  maxRow + 1,
		FirstCol: minCol + 1,
		LastCol:  maxCol + 1,
	}, nil
}
