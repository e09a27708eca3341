package service

import (
	"fmt"
	"math"
	"sort"

	"research-portal-backend/internal/database/models"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/repository"
)

// AnalyticsService computes summary statistics over booked presentations
type AnalyticsService struct {
	repo repository.PresentationRepositoryInterface
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.PresentationRepositoryInterface) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// DepartmentRank is one row of the department leader board. Rank follows
// standard competition ranking: equal counts share a rank and the next
// distinct count skips past them.
type DepartmentRank struct {
	Rank             int     `json:"rank"`
	Department       string  `json:"department"`
	Count            int     `json:"count"`
	PerformanceScore float64 `json:"performance_score"`
}

// MonthlyBucket is a (year, month) count in chronological order
type MonthlyBucket struct {
	YearMonth string `json:"year_month"`
	Count     int    `json:"count"`
}

// YearlyBucket is a calendar-year count in chronological order
type YearlyBucket struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// RoleCount is the number of presentations given by one presenter category
type RoleCount struct {
	Designation models.Designation `json:"designation"`
	Count       int                `json:"count"`
}

// HeatmapCell is one department's count in one (year, month) bucket
type HeatmapCell struct {
	Department string `json:"department"`
	YearMonth  string `json:"year_month"`
	Count      int    `json:"count"`
}

// AnalyticsSummary is the full aggregation output
type AnalyticsSummary struct {
	TotalPresentations     int              `json:"total_presentations"`
	DistinctDepartments    int              `json:"distinct_departments"`
	DistinctPresenters     int              `json:"distinct_presenters"`
	ResearchIntensityIndex float64          `json:"research_intensity_index"`
	YearOverYearGrowth     float64          `json:"year_over_year_growth"`
	DepartmentRanking      []DepartmentRank `json:"department_ranking"`
	MonthlyTrend           []MonthlyBucket  `json:"monthly_trend"`
	YearlyTrend            []YearlyBucket   `json:"yearly_trend"`
	RoleDistribution       []RoleCount      `json:"role_distribution"`
	DepartmentMonthly      []HeatmapCell    `json:"department_monthly"`
}

// Summary aggregates presentations in the optional date range
func (s *AnalyticsService) Summary(dateFrom, dateTo string) (*AnalyticsSummary, error) {
	filter, err := buildDateFilter(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	rows, _, err := s.repo.List(*filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load presentations: %w", err)
	}

	return Aggregate(rows)
}

// Aggregate computes the analytics summary from raw presentation rows. It is
// a pure function with no side effects: identical input always yields
// identical output, every derived slice is explicitly ordered.
func Aggregate(rows []models.Presentation) (*AnalyticsSummary, error) {
	departments := make(map[string]int)
	presenters := make(map[string]bool)
	years := make(map[int]int)
	months := make(map[string]int)
	roles := make(map[models.Designation]int)
	matrix := make(map[string]map[string]int)

	for _, row := range rows {
		name := row.Department.Name
		yearMonth := row.Date.Format("2006-01")

		departments[name]++
		presenters[row.Presenter] = true
		years[row.Date.Year()]++
		months[yearMonth]++
		roles[row.Designation]++
		if matrix[name] == nil {
			matrix[name] = make(map[string]int)
		}
		matrix[name][yearMonth]++
	}

	// The intensity index divides by the department count; with no data it is
	// undefined rather than zero
	if len(departments) == 0 {
		return nil, apperrors.ErrInsufficientData
	}

	total := len(rows)
	return &AnalyticsSummary{
		TotalPresentations:     total,
		DistinctDepartments:    len(departments),
		DistinctPresenters:     len(presenters),
		ResearchIntensityIndex: round2(float64(total) / float64(len(departments))),
		YearOverYearGrowth:     yearOverYearGrowth(years),
		DepartmentRanking:      rankDepartments(departments),
		MonthlyTrend:           monthlyTrend(months),
		YearlyTrend:            yearlyTrend(years),
		RoleDistribution:       roleDistribution(roles),
		DepartmentMonthly:      heatmapCells(matrix),
	}, nil
}

// yearOverYearGrowth compares the final recorded year against the one before
// it. Years with no presentations do not appear in the sequence; fewer than
// two recorded years is defined as zero growth.
func yearOverYearGrowth(years map[int]int) float64 {
	if len(years) < 2 {
		return 0
	}

	sorted := make([]int, 0, len(years))
	for year := range years {
		sorted = append(sorted, year)
	}
	sort.Ints(sorted)

	last := float64(years[sorted[len(sorted)-1]])
	prev := float64(years[sorted[len(sorted)-2]])
	return round2((last - prev) / prev * 100)
}

// rankDepartments orders departments by booking count descending, name
// ascending on ties so the output is stable
func rankDepartments(counts map[string]int) []DepartmentRank {
	ranking := make([]DepartmentRank, 0, len(counts))
	for name, count := range counts {
		ranking = append(ranking, DepartmentRank{Department: name, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Department < ranking[j].Department
	})

	maxCount := ranking[0].Count
	for i := range ranking {
		if i > 0 && ranking[i].Count == ranking[i-1].Count {
			ranking[i].Rank = ranking[i-1].Rank
		} else {
			ranking[i].Rank = i + 1
		}
		ranking[i].PerformanceScore = round2(float64(ranking[i].Count) / float64(maxCount) * 100)
	}

	return ranking
}

// monthlyTrend returns chronological (year, month) buckets
func monthlyTrend(months map[string]int) []MonthlyBucket {
	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	trend := make([]MonthlyBucket, len(keys))
	for i, key := range keys {
		trend[i] = MonthlyBucket{YearMonth: key, Count: months[key]}
	}
	return trend
}

// yearlyTrend returns chronological calendar-year buckets
func yearlyTrend(years map[int]int) []YearlyBucket {
	keys := make([]int, 0, len(years))
	for key := range years {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	trend := make([]YearlyBucket, len(keys))
	for i, key := range keys {
		trend[i] = YearlyBucket{Year: key, Count: years[key]}
	}
	return trend
}

// roleDistribution returns per-category counts in fixed display order,
// omitting categories with no presentations
func roleDistribution(roles map[models.Designation]int) []RoleCount {
	distribution := make([]RoleCount, 0, len(roles))
	for _, designation := range models.Designations() {
		if count := roles[designation]; count > 0 {
			distribution = append(distribution, RoleCount{Designation: designation, Count: count})
		}
	}
	return distribution
}

// heatmapCells flattens the department x month matrix into cells ordered by
// (year-month, department)
func heatmapCells(matrix map[string]map[string]int) []HeatmapCell {
	cells := make([]HeatmapCell, 0)
	for department, byMonth := range matrix {
		for yearMonth, count := range byMonth {
			cells = append(cells, HeatmapCell{
				Department: department,
				YearMonth:  yearMonth,
				Count:      count,
			})
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].YearMonth != cells[j].YearMonth {
			return cells[i].YearMonth < cells[j].YearMonth
		}
		return cells[i].Department < cells[j].Department
	})
	return cells
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
