package service

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"testing"

	apperrors "research-portal-backend/internal/errors"

	"github.com/stretchr/testify/assert"
)

// timeoutError satisfies net.Error with Timeout reporting true
type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

func TestClassifySendError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "smtp 535 is a credential rejection",
			err:      &textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"},
			expected: apperrors.ErrMailAuthFailure,
		},
		{
			name:     "smtp 534 is a credential rejection",
			err:      &textproto.Error{Code: 534, Msg: "5.7.9 Application-specific password required"},
			expected: apperrors.ErrMailAuthFailure,
		},
		{
			name:     "network timeout",
			err:      timeoutError{},
			expected: apperrors.ErrMailTimeout,
		},
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("send: %w", context.DeadlineExceeded),
			expected: apperrors.ErrMailTimeout,
		},
		{
			name:     "anything else is a connection failure",
			err:      errors.New("connection refused"),
			expected: apperrors.ErrMailConnectionFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classified := classifySendError(tc.err)
			assert.True(t, errors.Is(classified, tc.expected))
			assert.Contains(t, classified.Error(), tc.err.Error())
		})
	}
}

func TestSMTPMailerMissingCredentials(t *testing.T) {
	mailer := NewSMTPMailer("smtp.example.edu", 587, "", "", "portal@example.edu", 0)

	err := mailer.Send(context.Background(), "reader@example.edu", "subject", "body")

	assert.True(t, errors.Is(err, apperrors.ErrMailCredentialsMissing))
}
