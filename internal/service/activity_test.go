package service_test

import (
	"testing"
	"time"

	"research-portal-backend/internal/database/models"
	"research-portal-backend/internal/mocks"
	"research-portal-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ActivityLogServiceTestSuite defines the test suite for ActivityLogService
type ActivityLogServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockActivityRepo   *mocks.MockActivityLogRepositoryInterface
	activityLogService *service.ActivityLogService
}

// SetupTest sets up the test suite
func (suite *ActivityLogServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockActivityRepo = mocks.NewMockActivityLogRepositoryInterface(suite.ctrl)

	// Create a service with the mock repository
	suite.activityLogService = service.NewActivityLogService(suite.mockActivityRepo)
}

// TearDownTest cleans up after each test
func (suite *ActivityLogServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestListActivity tests listing the audit trail
func (suite *ActivityLogServiceTestSuite) TestListActivity() {
	now := time.Now()
	entries := []models.ActivityLog{
		{
			ID:             2,
			Action:         models.AuditActionDeleted,
			Title:          "Sparse Matrix Kernels",
			Presenter:      "Ravi Menon",
			DepartmentName: "Mathematics",
			DoneBy:         "Mathematics",
			CreatedAt:      now,
		},
		{
			ID:             1,
			Action:         models.AuditActionAdded,
			Title:          "Approximation Algorithms for Facility Location",
			Presenter:      "Asha Raman",
			DepartmentName: "Computer Science",
			DoneBy:         "Computer Science",
			CreatedAt:      now.Add(-time.Hour),
		},
	}

	suite.mockActivityRepo.EXPECT().
		List(50, 0).
		Return(entries, int64(2), nil).
		Times(1)

	response, err := suite.activityLogService.List(1, 50)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Equal(suite.T(), 1, response.Page)
	assert.Equal(suite.T(), 50, response.PageSize)
	assert.Len(suite.T(), response.Entries, 2)
	assert.Equal(suite.T(), models.AuditActionDeleted, response.Entries[0].Action)
	assert.Equal(suite.T(), uint(2), response.Entries[0].ID)
	assert.Equal(suite.T(), models.AuditActionAdded, response.Entries[1].Action)
}

// TestListActivityClampsPaging tests that out of range paging falls back to defaults
func (suite *ActivityLogServiceTestSuite) TestListActivityClampsPaging() {
	suite.mockActivityRepo.EXPECT().
		List(50, 0).
		Return([]models.ActivityLog{}, int64(0), nil).
		Times(1)

	response, err := suite.activityLogService.List(-3, 5000)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), 1, response.Page)
	assert.Equal(suite.T(), 50, response.PageSize)
}

// TestListActivitySecondPage tests that the offset follows the page number
func (suite *ActivityLogServiceTestSuite) TestListActivitySecondPage() {
	suite.mockActivityRepo.EXPECT().
		List(20, 20).
		Return([]models.ActivityLog{}, int64(45), nil).
		Times(1)

	response, err := suite.activityLogService.List(2, 20)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), int64(45), response.Total)
	assert.Equal(suite.T(), 2, response.Page)
	assert.Equal(suite.T(), 20, response.PageSize)
}

// TestActivityLogServiceTestSuite runs the test suite
func TestActivityLogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityLogServiceTestSuite))
}
