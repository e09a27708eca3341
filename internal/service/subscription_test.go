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

// SubscriptionServiceTestSuite defines the test suite for SubscriptionService
type SubscriptionServiceTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	mockSubscriptionRepo *mocks.MockSubscriptionRepositoryInterface
	subscriptionService  *service.SubscriptionService
	validator            *validator.Validate
}

// SetupTest sets up the test suite
func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockSubscriptionRepo = mocks.NewMockSubscriptionRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	// Create a service with the mock repository
	suite.subscriptionService = service.NewSubscriptionService(suite.mockSubscriptionRepo, suite.validator)
}

// TearDownTest cleans up after each test
func (suite *SubscriptionServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateSubscription tests subscribing a new email
func (suite *SubscriptionServiceTestSuite) TestCreateSubscription() {
	req := &service.CreateSubscriptionRequest{Email: "reader@example.edu"}

	suite.mockSubscriptionRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockSubscriptionRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(subscription *models.Subscription) error {
			subscription.ID = uuid.New()
			return nil
		}).
		Times(1)

	response, err := suite.subscriptionService.Create(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.Email, response.Email)
	assert.NotEqual(suite.T(), uuid.Nil, response.ID)
}

// TestCreateSubscriptionInvalidEmail tests subscribing with a malformed address
func (suite *SubscriptionServiceTestSuite) TestCreateSubscriptionInvalidEmail() {
	req := &service.CreateSubscriptionRequest{Email: "not-an-email"}

	response, err := suite.subscriptionService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

// TestCreateSubscriptionDuplicate tests subscribing an address twice
func (suite *SubscriptionServiceTestSuite) TestCreateSubscriptionDuplicate() {
	req := &service.CreateSubscriptionRequest{Email: "reader@example.edu"}
	existing := &models.Subscription{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     req.Email,
	}

	suite.mockSubscriptionRepo.EXPECT().
		GetByEmail(req.Email).
		Return(existing, nil).
		Times(1)

	response, err := suite.subscriptionService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrSubscriptionExists))
}

// TestListSubscriptions tests listing all subscribers
func (suite *SubscriptionServiceTestSuite) TestListSubscriptions() {
	subscriptions := []models.Subscription{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "a@example.edu"},
		{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "b@example.edu"},
	}

	suite.mockSubscriptionRepo.EXPECT().
		GetAll().
		Return(subscriptions, nil).
		Times(1)

	response, err := suite.subscriptionService.List()

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), 2, response.Total)
	assert.Len(suite.T(), response.Subscriptions, 2)
	assert.Equal(suite.T(), "a@example.edu", response.Subscriptions[0].Email)
	assert.Equal(suite.T(), "b@example.edu", response.Subscriptions[1].Email)
}

// TestDeleteSubscription tests removing a subscriber
func (suite *SubscriptionServiceTestSuite) TestDeleteSubscription() {
	subscriptionID := uuid.New()

	suite.mockSubscriptionRepo.EXPECT().
		Delete(subscriptionID).
		Return(nil).
		Times(1)

	err := suite.subscriptionService.Delete(subscriptionID)

	assert.NoError(suite.T(), err)
}

// TestDeleteSubscriptionNotFound tests removing a subscriber that does not exist
func (suite *SubscriptionServiceTestSuite) TestDeleteSubscriptionNotFound() {
	subscriptionID := uuid.New()

	suite.mockSubscriptionRepo.EXPECT().
		Delete(subscriptionID).
		Return(gorm.ErrRecordNotFound).
		Times(1)

	err := suite.subscriptionService.Delete(subscriptionID)

	assert.Error(suite.T(), err)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrSubscriptionNotFound))
}

// TestSubscriptionServiceTestSuite runs the test suite
func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
