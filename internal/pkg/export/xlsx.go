package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// amountFormat is the built-in "0.00" number format.
const amountFormat = 2

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name     string
	Headings []string
	Rows     [][]any
	// AmountColumns are zero-based columns holding numeric money values.
	// Their data cells get a two-decimal number format.
	AmountColumns []int
}

// WriteXLSX writes the sheets as a workbook to w. The first sheet replaces
// the default "Sheet1".
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		if err := writeRow(f, sheet.Name, 1, toAny(sheet.Headings)); err != nil {
			return err
		}
		if len(sheet.Headings) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(sheet.Headings), 1)
			if err := f.SetCellStyle(sheet.Name, "A1", last, bold); err != nil {
				return fmt.Errorf("failed to style header: %w", err)
			}
		}
		for r, row := range sheet.Rows {
			if err := writeRow(f, sheet.Name, r+2, row); err != nil {
				return err
			}
		}
		if len(sheet.Rows) > 0 {
			for _, col := range sheet.AmountColumns {
				first, _ := excelize.CoordinatesToCellName(col+1, 2)
				last, _ := excelize.CoordinatesToCellName(col+1, len(sheet.Rows)+1)
				if err := f.SetCellStyle(sheet.Name, first, last, amount); err != nil {
					return fmt.Errorf("failed to style amounts: %w", err)
				}
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
