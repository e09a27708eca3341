package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"research-portal-backend/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
)

// ReportService assembles the analytics PDF: an executive summary, the
// department leader board and rasterized trend charts
type ReportService struct {
	repo repository.PresentationRepositoryInterface
}

// NewReportService creates a new report service
func NewReportService(repo repository.PresentationRepositoryInterface) *ReportService {
	return &ReportService{repo: repo}
}

// ExportPDF aggregates presentations in the optional date range and renders
// the report. Chart PNGs are written to a scratch directory that is removed
// when assembly finishes, on success and failure alike.
func (s *ReportService) ExportPDF(ctx context.Context, dateFrom, dateTo string) (*bytes.Buffer, string, error) {
	filter, err := buildDateFilter(dateFrom, dateTo)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := s.repo.List(*filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load presentations: %w", err)
	}

	summary, err := Aggregate(rows)
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	scratch, err := os.MkdirTemp("", "portal-report-")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	monthlyPNG := filepath.Join(scratch, "monthly.png")
	if err := renderMonthlyChart(summary.MonthlyTrend, monthlyPNG); err != nil {
		return nil, "", fmt.Errorf("failed to render monthly chart: %w", err)
	}

	departmentPNG := filepath.Join(scratch, "departments.png")
	if err := renderDepartmentChart(summary.DepartmentRanking, departmentPNG); err != nil {
		return nil, "", fmt.Errorf("failed to render department chart: %w", err)
	}

	// The yearly chart only makes sense with at least two years on record
	yearlyPNG := ""
	if len(summary.YearlyTrend) >= 2 {
		yearlyPNG = filepath.Join(scratch, "yearly.png")
		if err := renderYearlyChart(summary.YearlyTrend, yearlyPNG); err != nil {
			return nil, "", fmt.Errorf("failed to render yearly chart: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	buf, err := assembleReport(summary, rangeLabel(dateFrom, dateTo), monthlyPNG, departmentPNG, yearlyPNG)
	if err != nil {
		return nil, "", fmt.Errorf("failed to assemble report: %w", err)
	}

	filename := fmt.Sprintf("research_report_%s.pdf", time.Now().Format(DateLayout))
	return buf, filename, nil
}

// renderMonthlyChart draws presentations per (year, month) bucket
func renderMonthlyChart(trend []MonthlyBucket, path string) error {
	bars := make([]chart.Value, len(trend))
	for i, bucket := range trend {
		bars[i] = chart.Value{Label: bucket.YearMonth, Value: float64(bucket.Count)}
	}
	return renderBarChart("Presentations per Month", bars, path)
}

// renderDepartmentChart draws presentations per department, best first
func renderDepartmentChart(ranking []DepartmentRank, path string) error {
	bars := make([]chart.Value, len(ranking))
	for i, rank := range ranking {
		bars[i] = chart.Value{Label: rank.Department, Value: float64(rank.Count)}
	}
	return renderBarChart("Presentations per Department", bars, path)
}

// renderYearlyChart draws presentations per calendar year
func renderYearlyChart(trend []YearlyBucket, path string) error {
	bars := make([]chart.Value, len(trend))
	for i, bucket := range trend {
		bars[i] = chart.Value{Label: strconv.Itoa(bucket.Year), Value: float64(bucket.Count)}
	}
	return renderBarChart("Presentations per Year", bars, path)
}

// renderBarChart rasterizes one bar chart to a PNG file. The y-axis range is
// pinned to start at zero and exceed the tallest bar so flat data cannot
// collapse the axis to a zero delta, which the renderer rejects.
func renderBarChart(title string, bars []chart.Value, path string) error {
	maxValue := 0.0
	for _, bar := range bars {
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}

	width := 900
	if w := 80 * len(bars); w > width {
		width = w
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   420,
		BarWidth: 46,
		XAxis:    chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue + 1},
		},
		Bars: bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

// assembleReport lays the summary, tables and chart images out as a PDF
func assembleReport(summary *AnalyticsSummary, rangeText, monthlyPNG, departmentPNG, yearlyPNG string) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Research Presentation Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, rangeText, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Executive summary
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Executive Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	summaryRows := []struct {
		label string
		value string
	}{
		{"Total presentations", strconv.Itoa(summary.TotalPresentations)},
		{"Departments represented", strconv.Itoa(summary.DistinctDepartments)},
		{"Distinct presenters", strconv.Itoa(summary.DistinctPresenters)},
		{"Research intensity index", fmt.Sprintf("%.2f", summary.ResearchIntensityIndex)},
		{"Year-over-year growth", fmt.Sprintf("%.2f%%", summary.YearOverYearGrowth)},
	}
	for _, row := range summaryRows {
		pdf.CellFormat(90, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, row.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Monthly trend
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Monthly Trend", "", 1, "L", false, 0, "")
	pdf.ImageOptions(monthlyPNG, 15, pdf.GetY(), 180, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(6)

	// Department ranking
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Department Ranking", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(18, 7, "Rank", "1", 0, "C", false, 0, "")
	pdf.CellFormat(92, 7, "Department", "1", 0, "L", false, 0, "")
	pdf.CellFormat(32, 7, "Presentations", "1", 0, "R", false, 0, "")
	pdf.CellFormat(32, 7, "Score", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, rank := range summary.DepartmentRanking {
		pdf.CellFormat(18, 7, strconv.Itoa(rank.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(92, 7, rank.Department, "1", 0, "L", false, 0, "")
		pdf.CellFormat(32, 7, strconv.Itoa(rank.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 7, fmt.Sprintf("%.2f", rank.PerformanceScore), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
	pdf.ImageOptions(departmentPNG, 15, pdf.GetY(), 180, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(6)

	// Yearly growth
	if yearlyPNG != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "Yearly Growth", "", 1, "L", false, 0, "")
		pdf.ImageOptions(yearlyPNG, 15, pdf.GetY(), 180, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// rangeLabel renders the filter bounds for the report subtitle
func rangeLabel(dateFrom, dateTo string) string {
	switch {
	case dateFrom != "" && dateTo != "":
		return fmt.Sprintf("%s to %s", dateFrom, dateTo)
	case dateFrom != "":
		return fmt.Sprintf("from %s", dateFrom)
	case dateTo != "":
		return fmt.Sprintf("through %s", dateTo)
	default:
		return "All recorded presentations"
	}
}
