package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ExportService renders filtered presentation rows into a flat spreadsheet
// with derived Year and Month columns
type ExportService struct {
	repo repository.PresentationRepositoryInterface
}

// NewExportService creates a new export service
func NewExportService(repo repository.PresentationRepositoryInterface) *ExportService {
	return &ExportService{repo: repo}
}

var exportColumns = []struct {
	header string
	width  float64
}{
	{"Date", 12},
	{"Time", 10},
	{"Presenter", 22},
	{"Designation", 12},
	{"Guide", 22},
	{"Title", 40},
	{"Abstract", 50},
	{"Duration", 10},
	{"Venue", 18},
	{"Department", 22},
	{"Year", 8},
	{"Month", 12},
}

// ExportExcel writes every presentation in the optional date range into one
// sheet, ordered by (date, time). Returns the workbook bytes and a suggested
// filename.
func (s *ExportService) ExportExcel(ctx context.Context, dateFrom, dateTo string) (*bytes.Buffer, string, error) {
	filter, err := buildDateFilter(dateFrom, dateTo)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := s.repo.List(*filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load presentations: %w", err)
	}
	if len(rows) == 0 {
		return nil, "", apperrors.ErrInsufficientData
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Presentations"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2F5B7C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, column := range exportColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, name, name, column.width)
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, column.header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Date.Format(DateLayout),
			row.StartTime,
			row.Presenter,
			string(row.Designation),
			row.GuideName,
			row.Title,
			row.Abstract,
			string(row.Duration),
			row.Venue,
			row.Department.Name,
			row.Date.Year(),
			row.Date.Month().String(),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("presentations_%s.xlsx", time.Now().Format(DateLayout))
	return buf, filename, nil
}
