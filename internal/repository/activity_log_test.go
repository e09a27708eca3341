//go:build integration
// +build integration

package repository

import (
	"testing"

	"research-portal-backend/internal/database/models"
	"research-portal-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// ActivityLogRepositoryTestSuite tests the ActivityLogRepository
type ActivityLogRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ActivityLogRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ActivityLogRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewActivityLogRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ActivityLogRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ActivityLogRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ActivityLogRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestAppend tests writing a single audit entry
func (suite *ActivityLogRepositoryTestSuite) TestAppend() {
	entry := suite.factories.ActivityLog.Create()

	err := suite.repo.Append(entry)

	suite.NoError(err)
	suite.NotZero(entry.ID)
	suite.NotZero(entry.CreatedAt)
}

// TestList tests listing audit entries newest first
func (suite *ActivityLogRepositoryTestSuite) TestList() {
	added := suite.factories.ActivityLog.WithAction(models.AuditActionAdded)
	updated := suite.factories.ActivityLog.WithAction(models.AuditActionUpdated)
	deleted := suite.factories.ActivityLog.WithAction(models.AuditActionDeleted)

	for _, entry := range []*models.ActivityLog{added, updated, deleted} {
		err := suite.repo.Append(entry)
		suite.NoError(err)
	}

	entries, total, err := suite.repo.List(10, 0)

	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(entries, 3)
	suite.Equal(models.AuditActionDeleted, entries[0].Action)
	suite.Equal(models.AuditActionUpdated, entries[1].Action)
	suite.Equal(models.AuditActionAdded, entries[2].Action)
}

// TestListWithPagination tests listing audit entries with pagination
func (suite *ActivityLogRepositoryTestSuite) TestListWithPagination() {
	var newestID uint
	for i := 0; i < 5; i++ {
		entry := suite.factories.ActivityLog.Create()
		err := suite.repo.Append(entry)
		suite.NoError(err)
		newestID = entry.ID
	}

	// Test first page
	entries, total, err := suite.repo.List(2, 0)
	suite.NoError(err)
	suite.Len(entries, 2)
	suite.Equal(int64(5), total)
	suite.Equal(newestID, entries[0].ID)

	// Test second page
	entries, total, err = suite.repo.List(2, 2)
	suite.NoError(err)
	suite.Len(entries, 2)
	suite.Equal(int64(5), total)

	// Test third page
	entries, total, err = suite.repo.List(2, 4)
	suite.NoError(err)
	suite.Len(entries, 1) // Only one left
	suite.Equal(int64(5), total)
}

// TestListAll tests that a zero limit returns every entry
func (suite *ActivityLogRepositoryTestSuite) TestListAll() {
	for i := 0; i < 3; i++ {
		entry := suite.factories.ActivityLog.Create()
		err := suite.repo.Append(entry)
		suite.NoError(err)
	}

	entries, total, err := suite.repo.List(0, 0)

	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(entries, 3)
}

// TestListEmpty tests listing audit entries when none exist
func (suite *ActivityLogRepositoryTestSuite) TestListEmpty() {
	entries, total, err := suite.repo.List(10, 0)

	suite.NoError(err)
	suite.Equal(int64(0), total)
	suite.Len(entries, 0)
}

// Run the test suite
func TestActivityLogRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityLogRepositoryTestSuite))
}
