package handlers

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/mocks"
	"research-portal-backend/internal/service"
	"research-portal-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// DepartmentHandlerTestSuite defines the test suite for DepartmentHandler
type DepartmentHandlerTestSuite struct {
	suite.Suite
	ctrl                  *gomock.Controller
	mockDepartmentService *mocks.MockDepartmentServiceInterface
	handler               *DepartmentHandler
	httpSuite             *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *DepartmentHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDepartmentService = mocks.NewMockDepartmentServiceInterface(suite.ctrl)

	// Create handler with mock service
	suite.handler = NewDepartmentHandler(suite.mockDepartmentService)

	// Setup HTTP test suite
	suite.httpSuite = testutils.SetupHTTPTest()

	// Register routes
	v1 := suite.httpSuite.Router.Group("/api/v1")
	{
		v1.POST("/departments", suite.handler.CreateDepartment)
		v1.GET("/departments", suite.handler.ListDepartments)
		v1.GET("/departments/:id", suite.handler.GetDepartment)
		v1.PUT("/departments/:id", suite.handler.UpdateDepartment)
	}
}

// TearDownTest cleans up after each test
func (suite *DepartmentHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateDepartment tests registering a department
func (suite *DepartmentHandlerTestSuite) TestCreateDepartment() {
	departmentID := uuid.New()
	requestBody := map[string]interface{}{
		"name":        "Computer Science",
		"head_email":  "head.cs@example.edu",
		"coord_email": "coord.cs@example.edu",
		"password":    "changeme123",
	}

	expectedResponse := &service.DepartmentResponse{
		ID:         departmentID,
		Name:       "Computer Science",
		HeadEmail:  "head.cs@example.edu",
		CoordEmail: "coord.cs@example.edu",
	}

	suite.mockDepartmentService.EXPECT().
		Create(gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/departments", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var response service.DepartmentResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), expectedResponse.ID, response.ID)
	assert.Equal(suite.T(), expectedResponse.Name, response.Name)
}

// TestCreateDepartmentDuplicate tests registering a department name twice
func (suite *DepartmentHandlerTestSuite) TestCreateDepartmentDuplicate() {
	requestBody := map[string]interface{}{
		"name":        "Computer Science",
		"head_email":  "head.cs@example.edu",
		"coord_email": "coord.cs@example.edu",
		"password":    "changeme123",
	}

	suite.mockDepartmentService.EXPECT().
		Create(gomock.Any()).
		Return(nil, apperrors.ErrDepartmentExists).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/departments", requestBody)

	assert.Equal(suite.T(), http.StatusConflict, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "already exists")
}

// TestCreateDepartmentValidationError tests registering with an invalid payload
func (suite *DepartmentHandlerTestSuite) TestCreateDepartmentValidationError() {
	requestBody := map[string]interface{}{
		"name": "Computer Science",
	}

	suite.mockDepartmentService.EXPECT().
		Create(gomock.Any()).
		Return(nil, apperrors.NewValidationError("head_email", "is required")).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/departments", requestBody)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "head_email")
}

// TestGetDepartment tests getting a department by ID
func (suite *DepartmentHandlerTestSuite) TestGetDepartment() {
	departmentID := uuid.New()
	expectedResponse := &service.DepartmentResponse{
		ID:         departmentID,
		Name:       "Computer Science",
		HeadEmail:  "head.cs@example.edu",
		CoordEmail: "coord.cs@example.edu",
	}

	suite.mockDepartmentService.EXPECT().
		GetByID(departmentID).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/departments/%s", departmentID), nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.DepartmentResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), expectedResponse.ID, response.ID)
	assert.Equal(suite.T(), expectedResponse.HeadEmail, response.HeadEmail)
}

// TestGetDepartmentInvalidID tests getting a department with a malformed ID
func (suite *DepartmentHandlerTestSuite) TestGetDepartmentInvalidID() {
	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/departments/invalid-uuid", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "invalid department ID")
}

// TestGetDepartmentNotFound tests getting a department that does not exist
func (suite *DepartmentHandlerTestSuite) TestGetDepartmentNotFound() {
	departmentID := uuid.New()

	suite.mockDepartmentService.EXPECT().
		GetByID(departmentID).
		Return(nil, apperrors.ErrDepartmentNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/departments/%s", departmentID), nil)

	assert.Equal(suite.T(), http.StatusNotFound, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "department not found")
}

// TestListDepartments tests listing all departments
func (suite *DepartmentHandlerTestSuite) TestListDepartments() {
	expectedResponse := &service.DepartmentListResponse{
		Departments: []service.DepartmentResponse{
			{ID: uuid.New(), Name: "Computer Science"},
			{ID: uuid.New(), Name: "Mathematics"},
		},
		Total: 2,
	}

	suite.mockDepartmentService.EXPECT().
		List().
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/departments", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.DepartmentListResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Len(suite.T(), response.Departments, 2)
	assert.Equal(suite.T(), 2, response.Total)
}

// TestUpdateDepartment tests updating department contacts
func (suite *DepartmentHandlerTestSuite) TestUpdateDepartment() {
	departmentID := uuid.New()
	requestBody := map[string]interface{}{
		"coord_email": "new.coord@example.edu",
	}

	expectedResponse := &service.DepartmentResponse{
		ID:         departmentID,
		Name:       "Computer Science",
		HeadEmail:  "head.cs@example.edu",
		CoordEmail: "new.coord@example.edu",
	}

	suite.mockDepartmentService.EXPECT().
		Update(departmentID, gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PUT", fmt.Sprintf("/api/v1/departments/%s", departmentID), requestBody)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.DepartmentResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), "new.coord@example.edu", response.CoordEmail)
}

// TestUpdateDepartmentNotFound tests updating a department that does not exist
func (suite *DepartmentHandlerTestSuite) TestUpdateDepartmentNotFound() {
	departmentID := uuid.New()
	requestBody := map[string]interface{}{
		"coord_email": "new.coord@example.edu",
	}

	suite.mockDepartmentService.EXPECT().
		Update(departmentID, gomock.Any()).
		Return(nil, apperrors.ErrDepartmentNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PUT", fmt.Sprintf("/api/v1/departments/%s", departmentID), requestBody)

	assert.Equal(suite.T(), http.StatusNotFound, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "department not found")
}

// TestDepartmentHandlerTestSuite runs the test suite
func TestDepartmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DepartmentHandlerTestSuite))
}
