package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"gstdesk/internal/domain"
)

const sheetName = "Invoice"

// numericColumns are written as numbers rather than text so spreadsheets can sum them.
var numericColumns = map[int]bool{5: true, 7: true, 8: true, 9: true, 10: true, 11: true, 12: true, 13: true}

// WriteXLSX writes the register of ci as a single-sheet workbook to out.
func WriteXLSX(out io.Writer, ci *domain.ComputedInvoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rows := make([][]string, 0, len(ci.Lines)+6)
	rows = append(rows, columns)
	for i := range ci.Lines {
		rows = append(rows, lineRow(ci, i))
	}
	rows = append(rows, totalsRows(ci)...)

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = cellValue(r, c, v)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func cellValue(row, col int, v string) interface{} {
	if row == 0 || !numericColumns[col] || v == "" {
		return v
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	return n
}
