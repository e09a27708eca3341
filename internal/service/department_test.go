package service_test

import (
	"errors"
	"testing"

	"research-portal-backend/internal/database/models"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/mocks"
	"research-portal-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// DepartmentServiceTestSuite defines the test suite for DepartmentService
type DepartmentServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockDepartmentRepo *mocks.MockDepartmentRepositoryInterface
	departmentService  *service.DepartmentService
	validator          *validator.Validate
}

// SetupTest sets up the test suite
func (suite *DepartmentServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDepartmentRepo = mocks.NewMockDepartmentRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	// Create a service with the mock repository
	suite.departmentService = service.NewDepartmentService(suite.mockDepartmentRepo, suite.validator)
}

// TearDownTest cleans up after each test
func (suite *DepartmentServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateDepartment tests registering a department
func (suite *DepartmentServiceTestSuite) TestCreateDepartment() {
	req := &service.CreateDepartmentRequest{
		Name:       "Computer Science",
		HeadEmail:  "head.cs@test.edu",
		CoordEmail: "coord.cs@test.edu",
		Password:   "changeme123",
	}

	// Mock GetByName to return not found (no existing department with same name)
	suite.mockDepartmentRepo.EXPECT().
		GetByName(req.Name).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	// Mock Create to succeed and capture the model for credential checks
	var created *models.Department
	suite.mockDepartmentRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(department *models.Department) error {
			created = department
			return nil
		}).
		Times(1)

	response, err := suite.departmentService.Create(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.Name, response.Name)
	assert.Equal(suite.T(), req.HeadEmail, response.HeadEmail)
	assert.Equal(suite.T(), req.CoordEmail, response.CoordEmail)

	// Stored credential is a hash that verifies the original password
	assert.NotNil(suite.T(), created)
	assert.NotEmpty(suite.T(), created.PasswordHash)
	assert.NotEqual(suite.T(), req.Password, created.PasswordHash)
	assert.True(suite.T(), created.CheckPassword(req.Password))
}

// TestCreateDepartmentValidationError tests registering a department with validation error
func (suite *DepartmentServiceTestSuite) TestCreateDepartmentValidationError() {
	req := &service.CreateDepartmentRequest{
		Name:       "", // Empty name should fail validation
		HeadEmail:  "head.cs@test.edu",
		CoordEmail: "coord.cs@test.edu",
		Password:   "changeme123",
	}

	response, err := suite.departmentService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

// TestCreateDepartmentShortPassword tests registering a department with a password below the minimum
func (suite *DepartmentServiceTestSuite) TestCreateDepartmentShortPassword() {
	req := &service.CreateDepartmentRequest{
		Name:       "Computer Science",
		HeadEmail:  "head.cs@test.edu",
		CoordEmail: "coord.cs@test.edu",
		Password:   "short",
	}

	response, err := suite.departmentService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.Contains(suite.T(), err.Error(), "Password")
}

// TestCreateDepartmentDuplicateName tests registering a department with duplicate name
func (suite *DepartmentServiceTestSuite) TestCreateDepartmentDuplicateName() {
	req := &service.CreateDepartmentRequest{
		Name:       "Computer Science",
		HeadEmail:  "head.cs@test.edu",
		CoordEmail: "coord.cs@test.edu",
		Password:   "changeme123",
	}

	existingDepartment := &models.Department{
		BaseModel: models.BaseModel{
			ID: uuid.New(),
		},
		Name:       req.Name,
		HeadEmail:  "existing.head@test.edu",
		CoordEmail: "existing.coord@test.edu",
	}

	// Mock GetByName to return existing department
	suite.mockDepartmentRepo.EXPECT().
		GetByName(req.Name).
		Return(existingDepartment, nil).
		Times(1)

	response, err := suite.departmentService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrDepartmentExists))
}

// TestAuthenticate tests verifying a coordinator credential
func (suite *DepartmentServiceTestSuite) TestAuthenticate() {
	department := &models.Department{
		BaseModel: models.BaseModel{
			ID: uuid.New(),
		},
		Name:       "Computer Science",
		HeadEmail:  "head.cs@test.edu",
		CoordEmail: "coord.cs@test.edu",
	}
	err := department.SetPassword("changeme123")
	assert.NoError(suite.T(), err)

	suite.mockDepartmentRepo.EXPECT().
		GetByName(department.Name).
		Return(department, nil).
		Times(1)

	authenticated, err := suite.departmentService.Authenticate(department.Name, "changeme123")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), authenticated)
	assert.Equal(suite.T(), department.ID, authenticated.ID)
}

// TestAuthenticateWrongPassword tests that a wrong password is rejected
func (suite *DepartmentServiceTestSuite) TestAuthenticateWrongPassword() {
	department := &models.Department{
		BaseModel: models.BaseModel{
			ID: uuid.New(),
		},
		Name: "Computer Science",
	}
	err := department.SetPassword("changeme123")
	assert.NoError(suite.T(), err)

	suite.mockDepartmentRepo.EXPECT().
		GetByName(department.Name).
		Return(department, nil).
		Times(1)

	authenticated, err := suite.departmentService.Authenticate(department.Name, "wrong-password")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), authenticated)
	assert.Equal(suite.T(), apperrors.ErrInvalidCredentials, err)
}

// TestAuthenticateUnknownDepartment tests that unknown names fail with the same error as wrong passwords
func (suite *DepartmentServiceTestSuite) TestAuthenticateUnknownDepartment() {
	suite.mockDepartmentRepo.EXPECT().
		GetByName("Ghost Department").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	authenticated, err := suite.departmentService.Authenticate("Ghost Department", "changeme123")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), authenticated)
	assert.Equal(suite.T(), apperrors.ErrInvalidCredentials, err)
}

// TestGetDepartmentByID tests getting a department by ID
func (suite *DepartmentServiceTestSuite) TestGetDepartmentByID() {
	departmentID := uuid.New()
	expectedDepartment := &models.Department{
		BaseModel: models.BaseModel{
			ID: departmentID,
		},
		Name:       "Computer Science",
		HeadEmail:  "head.cs@test.edu",
		CoordEmail: "coord.cs@test.edu",
	}

	suite.mockDepartmentRepo.EXPECT().
		GetByID(departmentID).
		Return(expectedDepartment, nil).
		Times(1)

	response, err := suite.departmentService.GetByID(departmentID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), expectedDepartment.ID, response.ID)
	assert.Equal(suite.T(), expectedDepartment.Name, response.Name)
	assert.Equal(suite.T(), expectedDepartment.HeadEmail, response.HeadEmail)
}

// TestGetDepartmentByIDNotFound tests getting a department by ID when not found
func (suite *DepartmentServiceTestSuite) TestGetDepartmentByIDNotFound() {
	departmentID := uuid.New()

	suite.mockDepartmentRepo.EXPECT().
		GetByID(departmentID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.departmentService.GetByID(departmentID)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrDepartmentNotFound))
}

// TestListDepartments tests listing all departments
func (suite *DepartmentServiceTestSuite) TestListDepartments() {
	departments := []models.Department{
		{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Name:      "Computer Science",
		},
		{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Name:      "Mathematics",
		},
	}

	suite.mockDepartmentRepo.EXPECT().
		GetAll().
		Return(departments, nil).
		Times(1)

	response, err := suite.departmentService.List()

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), 2, response.Total)
	assert.Len(suite.T(), response.Departments, 2)
	assert.Equal(suite.T(), "Computer Science", response.Departments[0].Name)
	assert.Equal(suite.T(), "Mathematics", response.Departments[1].Name)
}

// TestUpdateDepartment tests updating department contacts
func (suite *DepartmentServiceTestSuite) TestUpdateDepartment() {
	departmentID := uuid.New()
	existingDepartment := &models.Department{
		BaseModel: models.BaseModel{
			ID: departmentID,
		},
		Name:       "Computer Science",
		HeadEmail:  "head.cs@test.edu",
		CoordEmail: "coord.cs@test.edu",
	}

	newCoordEmail := "new.coord@test.edu"
	req := &service.UpdateDepartmentRequest{
		CoordEmail: &newCoordEmail,
	}

	suite.mockDepartmentRepo.EXPECT().
		GetByID(departmentID).
		Return(existingDepartment, nil).
		Times(1)

	suite.mockDepartmentRepo.EXPECT().
		Update(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.departmentService.Update(departmentID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), newCoordEmail, response.CoordEmail)
	assert.Equal(suite.T(), "head.cs@test.edu", response.HeadEmail)
}

// TestUpdateDepartmentResetPassword tests resetting the coordinator credential
func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentResetPassword() {
	departmentID := uuid.New()
	existingDepartment := &models.Department{
		BaseModel: models.BaseModel{
			ID: departmentID,
		},
		Name: "Computer Science",
	}
	err := existingDepartment.SetPassword("old-password-1")
	assert.NoError(suite.T(), err)

	newPassword := "new-password-1"
	req := &service.UpdateDepartmentRequest{
		Password: &newPassword,
	}

	suite.mockDepartmentRepo.EXPECT().
		GetByID(departmentID).
		Return(existingDepartment, nil).
		Times(1)

	suite.mockDepartmentRepo.EXPECT().
		Update(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.departmentService.Update(departmentID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.True(suite.T(), existingDepartment.CheckPassword(newPassword))
	assert.False(suite.T(), existingDepartment.CheckPassword("old-password-1"))
}

// TestUpdateDepartmentNotFound tests updating a department that does not exist
func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentNotFound() {
	departmentID := uuid.New()
	newCoordEmail := "new.coord@test.edu"
	req := &service.UpdateDepartmentRequest{
		CoordEmail: &newCoordEmail,
	}

	suite.mockDepartmentRepo.EXPECT().
		GetByID(departmentID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.departmentService.Update(departmentID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrDepartmentNotFound))
}

// TestUpdateDepartmentInvalidEmail tests updating a department with a malformed email
func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentInvalidEmail() {
	badEmail := "not-an-email"
	req := &service.UpdateDepartmentRequest{
		HeadEmail: &badEmail,
	}

	response, err := suite.departmentService.Update(uuid.New(), req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

// TestDepartmentServiceTestSuite runs the test suite
func TestDepartmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepartmentServiceTestSuite))
}
