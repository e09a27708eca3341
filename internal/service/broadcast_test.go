package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"research-portal-backend/internal/database/models"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/logger"
	"research-portal-backend/internal/mocks"
	"research-portal-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeMailer records deliveries and fails the addresses it is told to fail
type fakeMailer struct {
	sent     []string
	failWith map[string]error
	lastBody string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if err, ok := m.failWith[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	m.lastBody = body
	return nil
}

// BroadcastServiceTestSuite defines the test suite for BroadcastService
type BroadcastServiceTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	mockDepartmentRepo   *mocks.MockDepartmentRepositoryInterface
	mockSubscriptionRepo *mocks.MockSubscriptionRepositoryInterface
	mockPresentationRepo *mocks.MockPresentationRepositoryInterface
	mailer               *fakeMailer
	broadcastService     *service.BroadcastService
}

// SetupTest sets up the test suite
func (suite *BroadcastServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDepartmentRepo = mocks.NewMockDepartmentRepositoryInterface(suite.ctrl)
	suite.mockSubscriptionRepo = mocks.NewMockSubscriptionRepositoryInterface(suite.ctrl)
	suite.mockPresentationRepo = mocks.NewMockPresentationRepositoryInterface(suite.ctrl)
	suite.mailer = &fakeMailer{failWith: map[string]error{}}

	// Create a service with the mock repositories and a recording mailer
	suite.broadcastService = service.NewBroadcastService(
		suite.mockDepartmentRepo,
		suite.mockSubscriptionRepo,
		suite.mockPresentationRepo,
		suite.mailer,
		logger.New(),
	)
}

// TearDownTest cleans up after each test
func (suite *BroadcastServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// expectRecipients wires the default contact and subscriber lists. The
// coordinator address reappears as a subscriber in different case to cover
// deduplication.
func (suite *BroadcastServiceTestSuite) expectRecipients() {
	suite.mockDepartmentRepo.EXPECT().
		GetAll().
		Return([]models.Department{
			{Name: "Computer Science", HeadEmail: "head.cs@example.edu", CoordEmail: "coord.cs@example.edu"},
			{Name: "Mathematics", HeadEmail: "head.math@example.edu", CoordEmail: "coord.math@example.edu"},
		}, nil).
		Times(1)

	suite.mockSubscriptionRepo.EXPECT().
		GetAll().
		Return([]models.Subscription{
			{Email: "reader@example.edu"},
			{Email: " COORD.CS@example.edu "},
		}, nil).
		Times(1)
}

// TestBroadcast tests a full delivery run with a deduplicated recipient list
func (suite *BroadcastServiceTestSuite) TestBroadcast() {
	suite.expectRecipients()

	suite.mockPresentationRepo.EXPECT().
		List(gomock.Any()).
		Return([]models.Presentation{
			{
				Presenter:  "Asha Raman",
				Title:      "Approximation Algorithms for Facility Location",
				Date:       time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
				StartTime:  "10:00 AM",
				Venue:      "Seminar Hall A",
				Department: models.Department{Name: "Computer Science"},
			},
		}, int64(1), nil).
		Times(1)

	result, err := suite.broadcastService.Broadcast(context.Background())

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result)
	assert.Equal(suite.T(), 5, result.Recipients)
	assert.Equal(suite.T(), 5, result.Sent)
	assert.Empty(suite.T(), result.Failures)

	// Delivery order is the sorted recipient list
	assert.Equal(suite.T(), []string{
		"coord.cs@example.edu",
		"coord.math@example.edu",
		"head.cs@example.edu",
		"head.math@example.edu",
		"reader@example.edu",
	}, suite.mailer.sent)

	assert.Contains(suite.T(), suite.mailer.lastBody, "Upcoming research presentations")
	assert.Contains(suite.T(), suite.mailer.lastBody, "Approximation Algorithms for Facility Location")
	assert.Contains(suite.T(), suite.mailer.lastBody, "Seminar Hall A")
}

// TestBroadcastEmptySchedule tests that a run with no upcoming bookings still sends
func (suite *BroadcastServiceTestSuite) TestBroadcastEmptySchedule() {
	suite.expectRecipients()

	suite.mockPresentationRepo.EXPECT().
		List(gomock.Any()).
		Return([]models.Presentation{}, int64(0), nil).
		Times(1)

	result, err := suite.broadcastService.Broadcast(context.Background())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, result.Sent)
	assert.Contains(suite.T(), suite.mailer.lastBody, "No presentations are scheduled")
}

// TestBroadcastPartialFailure tests that a bounced address does not stop the run
func (suite *BroadcastServiceTestSuite) TestBroadcastPartialFailure() {
	suite.expectRecipients()

	suite.mockPresentationRepo.EXPECT().
		List(gomock.Any()).
		Return([]models.Presentation{}, int64(0), nil).
		Times(1)

	suite.mailer.failWith["head.math@example.edu"] = errors.New("550 mailbox unavailable")

	result, err := suite.broadcastService.Broadcast(context.Background())

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result)
	assert.Equal(suite.T(), 5, result.Recipients)
	assert.Equal(suite.T(), 4, result.Sent)
	require.Len(suite.T(), result.Failures, 1)
	assert.Equal(suite.T(), "head.math@example.edu", result.Failures[0].Email)
	assert.Contains(suite.T(), result.Failures[0].Reason, "550")

	// Addresses after the failed one still receive mail
	assert.Contains(suite.T(), suite.mailer.sent, "reader@example.edu")
}

// TestBroadcastAbortsOnAuthFailure tests that rejected credentials stop the run
func (suite *BroadcastServiceTestSuite) TestBroadcastAbortsOnAuthFailure() {
	suite.expectRecipients()

	suite.mockPresentationRepo.EXPECT().
		List(gomock.Any()).
		Return([]models.Presentation{}, int64(0), nil).
		Times(1)

	// The first sorted recipient triggers the credential rejection
	suite.mailer.failWith["coord.cs@example.edu"] = apperrors.ErrMailAuthFailure

	result, err := suite.broadcastService.Broadcast(context.Background())

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrMailAuthFailure))
	assert.Empty(suite.T(), suite.mailer.sent)
}

// TestBroadcastMissingCredentials tests that unconfigured credentials stop the run
func (suite *BroadcastServiceTestSuite) TestBroadcastMissingCredentials() {
	suite.expectRecipients()

	suite.mockPresentationRepo.EXPECT().
		List(gomock.Any()).
		Return([]models.Presentation{}, int64(0), nil).
		Times(1)

	suite.mailer.failWith["coord.cs@example.edu"] = apperrors.ErrMailCredentialsMissing

	result, err := suite.broadcastService.Broadcast(context.Background())

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrMailCredentialsMissing))
}

// TestBroadcastNoRecipients tests a run with no contacts or subscribers at all
func (suite *BroadcastServiceTestSuite) TestBroadcastNoRecipients() {
	suite.mockDepartmentRepo.EXPECT().
		GetAll().
		Return([]models.Department{}, nil).
		Times(1)

	suite.mockSubscriptionRepo.EXPECT().
		GetAll().
		Return([]models.Subscription{}, nil).
		Times(1)

	result, err := suite.broadcastService.Broadcast(context.Background())

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrNoRecipients))
}

// TestBroadcastServiceTestSuite runs the test suite
func TestBroadcastServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BroadcastServiceTestSuite))
}
