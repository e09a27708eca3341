package handlers

import (
	"bytes"
	"net/http"
	"testing"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/mocks"
	"research-portal-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ReportHandlerTestSuite defines the test suite for ReportHandler
type ReportHandlerTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockExportService *mocks.MockExportServiceInterface
	mockReportService *mocks.MockReportServiceInterface
	handler           *ReportHandler
	httpSuite         *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *ReportHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockExportService = mocks.NewMockExportServiceInterface(suite.ctrl)
	suite.mockReportService = mocks.NewMockReportServiceInterface(suite.ctrl)

	// Create handler with mock services
	suite.handler = NewReportHandler(suite.mockExportService, suite.mockReportService)

	// Setup HTTP test suite
	suite.httpSuite = testutils.SetupHTTPTest()

	// Register routes
	v1 := suite.httpSuite.Router.Group("/api/v1")
	{
		v1.GET("/reports/excel", suite.handler.ExportExcel)
		v1.GET("/reports/pdf", suite.handler.ExportPDF)
	}
}

// TearDownTest cleans up after each test
func (suite *ReportHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestExportExcel tests downloading the spreadsheet export
func (suite *ReportHandlerTestSuite) TestExportExcel() {
	content := []byte("PK\x03\x04workbook-bytes")

	suite.mockExportService.EXPECT().
		ExportExcel(gomock.Any(), "", "").
		Return(bytes.NewBuffer(content), "presentations_2026-08-24.xlsx", nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/reports/excel", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), contentTypeXLSX, recorder.Header().Get("Content-Type"))
	assert.Equal(suite.T(),
		`attachment; filename="presentations_2026-08-24.xlsx"`,
		recorder.Header().Get("Content-Disposition"))
	assert.Equal(suite.T(), content, recorder.Body.Bytes())
}

// TestExportExcelWithDateRange tests that range bounds reach the export service
func (suite *ReportHandlerTestSuite) TestExportExcelWithDateRange() {
	suite.mockExportService.EXPECT().
		ExportExcel(gomock.Any(), "2026-01-01", "2026-06-30").
		Return(bytes.NewBufferString("workbook"), "presentations_2026-08-24.xlsx", nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET",
		"/api/v1/reports/excel?date_from=2026-01-01&date_to=2026-06-30", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

// TestExportExcelNoData tests the spreadsheet export with nothing to export
func (suite *ReportHandlerTestSuite) TestExportExcelNoData() {
	suite.mockExportService.EXPECT().
		ExportExcel(gomock.Any(), "", "").
		Return(nil, "", apperrors.ErrInsufficientData).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/reports/excel", nil)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnprocessableEntity, "not enough data")
}

// TestExportExcelMalformedDate tests the spreadsheet export with a bad bound
func (suite *ReportHandlerTestSuite) TestExportExcelMalformedDate() {
	suite.mockExportService.EXPECT().
		ExportExcel(gomock.Any(), "January", "").
		Return(nil, "", apperrors.NewValidationError("date_from", "must be formatted YYYY-MM-DD")).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/reports/excel?date_from=January", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "date_from")
}

// TestExportPDF tests downloading the analytics report
func (suite *ReportHandlerTestSuite) TestExportPDF() {
	content := []byte("%PDF-1.4 report-bytes")

	suite.mockReportService.EXPECT().
		ExportPDF(gomock.Any(), "", "").
		Return(bytes.NewBuffer(content), "research_report_2026-08-24.pdf", nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/reports/pdf", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), contentTypePDF, recorder.Header().Get("Content-Type"))
	assert.Equal(suite.T(),
		`attachment; filename="research_report_2026-08-24.pdf"`,
		recorder.Header().Get("Content-Disposition"))
	assert.Equal(suite.T(), content, recorder.Body.Bytes())
}

// TestExportPDFNoData tests the report with nothing to aggregate
func (suite *ReportHandlerTestSuite) TestExportPDFNoData() {
	suite.mockReportService.EXPECT().
		ExportPDF(gomock.Any(), "", "").
		Return(nil, "", apperrors.ErrInsufficientData).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/reports/pdf", nil)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnprocessableEntity, "not enough data")
}

// TestExportPDFInvertedRange tests the report with the range bounds reversed
func (suite *ReportHandlerTestSuite) TestExportPDFInvertedRange() {
	suite.mockReportService.EXPECT().
		ExportPDF(gomock.Any(), "2026-12-31", "2026-01-01").
		Return(nil, "", apperrors.ErrInvalidDateRange).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET",
		"/api/v1/reports/pdf?date_from=2026-12-31&date_to=2026-01-01", nil)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnprocessableEntity, "invalid date range")
}

// TestReportHandlerTestSuite runs the test suite
func TestReportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
