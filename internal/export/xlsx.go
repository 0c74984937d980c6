package export

import (
	"fmt"

	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Trades"

var headers = []string{
	"Region Code", "Region", "Apartment", "Amount (KRW)",
	"Year", "Month", "Day", "Area (m2)", "Floor", "Dong", "Jibun",
}

// WriteXLSX saves records as a one-sheet workbook with a frozen header row
func WriteXLSX(path string, records []models.TransactionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		if err := setCellValue(f, col+1, 1, header); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, rec := range records {
		row := i + 2
		var floor any
		if rec.Floor != nil {
			floor = *rec.Floor
		}
		values := []any{
			rec.RegionCode, rec.RegionName, rec.AptName, rec.Amount,
			rec.Year, rec.Month, rec.Day, rec.Area, floor, rec.Dong, rec.Jibun,
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			if err := setCellValue(f, col+1, row, v); err != nil {
				return fmt.Errorf("failed to set cell value at row %d: %w", row, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setCellValue(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheetName, cell, value)
}
