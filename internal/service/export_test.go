package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"research-portal-backend/internal/database/models"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/mocks"
	"research-portal-backend/internal/repository"
	"research-portal-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

// ExportServiceTestSuite defines the test suite for ExportService
type ExportServiceTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	mockPresentationRepo *mocks.MockPresentationRepositoryInterface
	exportService        *service.ExportService
}

// SetupTest sets up the test suite
func (suite *ExportServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockPresentationRepo = mocks.NewMockPresentationRepositoryInterface(suite.ctrl)

	// Create a service with the mock repository
	suite.exportService = service.NewExportService(suite.mockPresentationRepo)
}

// TearDownTest cleans up after each test
func (suite *ExportServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestExportExcel tests rendering bookings into a workbook
func (suite *ExportServiceTestSuite) TestExportExcel() {
	rows := []models.Presentation{
		{
			Presenter:   "Asha Raman",
			Designation: models.DesignationScholar,
			GuideName:   "Dr. Priya Nair",
			Title:       "Approximation Algorithms for Facility Location",
			Abstract:    "A survey of approximation techniques.",
			Date:        time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
			StartTime:   "10:00 AM",
			Duration:    models.DurationHour,
			Venue:       "Seminar Hall A",
			Department:  models.Department{Name: "Computer Science"},
		},
		{
			Presenter:   "Ravi Menon",
			Designation: models.DesignationFaculty,
			Title:       "Sparse Matrix Kernels",
			Date:        time.Date(2026, time.September, 11, 0, 0, 0, 0, time.UTC),
			StartTime:   "02:30 PM",
			Duration:    models.DurationHalfHour,
			Venue:       "Seminar Hall B",
			Department:  models.Department{Name: "Mathematics"},
		},
	}

	suite.mockPresentationRepo.EXPECT().
		List(repository.PresentationFilter{}).
		Return(rows, int64(2), nil).
		Times(1)

	buf, filename, err := suite.exportService.ExportExcel(context.Background(), "", "")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), buf)
	assert.True(suite.T(), strings.HasPrefix(filename, "presentations_"))
	assert.True(suite.T(), strings.HasSuffix(filename, ".xlsx"))

	// Read the workbook back and check the sheet contents
	workbook, err := excelize.OpenReader(buf)
	require.NoError(suite.T(), err)
	defer workbook.Close()

	header, err := workbook.GetCellValue("Presentations", "A1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Date", header)

	date, _ := workbook.GetCellValue("Presentations", "A2")
	assert.Equal(suite.T(), "2026-09-10", date)
	presenter, _ := workbook.GetCellValue("Presentations", "C2")
	assert.Equal(suite.T(), "Asha Raman", presenter)
	department, _ := workbook.GetCellValue("Presentations", "J2")
	assert.Equal(suite.T(), "Computer Science", department)

	// Derived Year and Month columns come from the booking date
	year, _ := workbook.GetCellValue("Presentations", "K2")
	assert.Equal(suite.T(), "2026", year)
	month, _ := workbook.GetCellValue("Presentations", "L2")
	assert.Equal(suite.T(), "September", month)

	secondPresenter, _ := workbook.GetCellValue("Presentations", "C3")
	assert.Equal(suite.T(), "Ravi Menon", secondPresenter)
}

// TestExportExcelNoData tests exporting an empty result set
func (suite *ExportServiceTestSuite) TestExportExcelNoData() {
	suite.mockPresentationRepo.EXPECT().
		List(repository.PresentationFilter{}).
		Return([]models.Presentation{}, int64(0), nil).
		Times(1)

	buf, filename, err := suite.exportService.ExportExcel(context.Background(), "", "")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), buf)
	assert.Empty(suite.T(), filename)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrInsufficientData))
}

// TestExportExcelInvertedRange tests exporting with the range bounds reversed
func (suite *ExportServiceTestSuite) TestExportExcelInvertedRange() {
	buf, _, err := suite.exportService.ExportExcel(context.Background(), "2026-12-31", "2026-01-01")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), buf)
	assert.Equal(suite.T(), apperrors.ErrInvalidDateRange, err)
}

// TestExportExcelCancelledContext tests that a cancelled request aborts the render
func (suite *ExportServiceTestSuite) TestExportExcelCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite.mockPresentationRepo.EXPECT().
		List(repository.PresentationFilter{}).
		Return([]models.Presentation{
			{
				Presenter:  "Asha Raman",
				Date:       time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
				Department: models.Department{Name: "Computer Science"},
			},
		}, int64(1), nil).
		Times(1)

	buf, _, err := suite.exportService.ExportExcel(ctx, "", "")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), buf)
	assert.True(suite.T(), errors.Is(err, context.Canceled))
}

// TestExportServiceTestSuite runs the test suite
func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
