// Package export writes the currently filtered table as CSV or XLSX for the
// download endpoint and the CLI.
package export

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"

	"epiview/internal/errors"
)

// WriteCSV streams headers plus rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing CSV row")
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes headers plus rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return errors.Wrap(err, "creating worksheet")
		}
		f.SetActiveSheet(idx)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.Wrap(err, "writing header cell")
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrap(err, "writing data cell")
			}
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
