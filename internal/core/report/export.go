package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const monthlySheet = "Asistencia"

var monthlyHeaders = []string{"Código", "Nombre completo", "Cargo", "Días trabajados", "Entradas", "Salidas"}

// ExportMonthlyAttendance は月次打刻集計を xlsx として書き出し、内容と推奨ファイル名を返します。
func (s *Service) ExportMonthlyAttendance(ctx context.Context, in MonthlyInput) (*bytes.Buffer, string, error) {
	rows, err := s.MonthlyAttendance(ctx, in)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(monthlySheet)
	if err != nil {
		return nil, "", fmt.Errorf("report: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("report: delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("report: header style: %w", err)
	}

	title := fmt.Sprintf("Reporte mensual de asistencia %02d/%d", in.Month, in.Year)
	lastCol := colName(len(monthlyHeaders))
	_ = f.SetCellValue(monthlySheet, "A1", title)
	_ = f.MergeCell(monthlySheet, "A1", cell(lastCol, 1))
	_ = f.SetCellStyle(monthlySheet, "A1", cell(lastCol, 1), headerStyle)

	for i, h := range monthlyHeaders {
		_ = f.SetCellValue(monthlySheet, cell(colName(i+1), 2), h)
	}
	_ = f.SetCellStyle(monthlySheet, "A2", cell(lastCol, 2), headerStyle)
	_ = f.SetColWidth(monthlySheet, "A", "A", 14)
	_ = f.SetColWidth(monthlySheet, "B", "C", 32)
	_ = f.SetColWidth(monthlySheet, "D", lastCol, 16)

	for i, r := range rows {
		row := i + 3
		position := ""
		if r.PositionName != nil {
			position = *r.PositionName
		}
		values := []any{r.Code, r.FullName, position, r.DaysWorked, r.ClockIns, r.ClockOuts}
		for j, v := range values {
			if err := f.SetCellValue(monthlySheet, cell(colName(j+1), row), v); err != nil {
				return nil, "", fmt.Errorf("report: write cell: %w", err)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("report: write xlsx: %w", err)
	}

	return buf, fmt.Sprintf("asistencia_%d_%02d.xlsx", in.Year, in.Month), nil
}

func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
