package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"claimlens/internal/domain"
)

const sheetName = "Evaluations"

// WriteXLSX writes the evaluation history as a single-sheet workbook.
// The column layout matches the CSV export.
func WriteXLSX(w io.Writer, evals []domain.Evaluation) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeRow(f, 1, columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheetName, "A1", endCell, headerStyle)
	}

	for i := range evals {
		row := evaluationToRow(&evals[i])
		if err := writeRow(f, i+2, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheetName, cell, &cells)
}
