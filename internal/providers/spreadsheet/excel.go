package spreadsheet

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	defaultSheetName = "Sheet1"
	headerRow        = 4
)

var ErrNoColumns = errors.New("spreadsheet has no columns")

type ExcelProvider struct{}

func New() Provider {
	return &ExcelProvider{}
}

func (p *ExcelProvider) Generate(ctx context.Context, sheet Sheet) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(sheet.Columns) == 0 {
		return nil, ErrNoColumns
	}

	f := excelize.NewFile()
	defer f.Close()

	name := strings.TrimSpace(sheet.Name)
	if name == "" {
		name = defaultSheetName
	}
	if name != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, name); err != nil {
			return nil, err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F6F8B"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	if sheet.Title != "" {
		if err := f.SetCellValue(name, "A1", sheet.Title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(name, "A1", "A1", titleStyle); err != nil {
			return nil, err
		}
	}
	if sheet.Subtitle != "" {
		if err := f.SetCellValue(name, "A2", sheet.Subtitle); err != nil {
			return nil, err
		}
	}

	for idx, column := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(idx+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(name, cell, column.Label); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		if column.Width > 0 {
			colName, err := excelize.ColumnNumberToName(idx + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(name, colName, colName, column.Width); err != nil {
				return nil, err
			}
		}
	}

	for rowIdx, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(1, headerRow+1+rowIdx)
		if err != nil {
			return nil, err
		}
		values := row
		if len(values) > len(sheet.Columns) {
			values = values[:len(sheet.Columns)]
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
