package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"research-portal-backend/internal/database/models"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/logger"
	"research-portal-backend/internal/repository"
)

// BroadcastService emails the upcoming schedule to department contacts and
// subscribers
type BroadcastService struct {
	departmentRepo   repository.DepartmentRepositoryInterface
	subscriptionRepo repository.SubscriptionRepositoryInterface
	presentationRepo repository.PresentationRepositoryInterface
	mailer           Mailer
	log              *logger.Logger
}

// NewBroadcastService creates a new broadcast service
func NewBroadcastService(
	departmentRepo repository.DepartmentRepositoryInterface,
	subscriptionRepo repository.SubscriptionRepositoryInterface,
	presentationRepo repository.PresentationRepositoryInterface,
	mailer Mailer,
	log *logger.Logger,
) *BroadcastService {
	return &BroadcastService{
		departmentRepo:   departmentRepo,
		subscriptionRepo: subscriptionRepo,
		presentationRepo: presentationRepo,
		mailer:           mailer,
		log:              log,
	}
}

// BroadcastFailure records one recipient the relay rejected
type BroadcastFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// BroadcastResult reports how a broadcast run went, recipient by recipient
type BroadcastResult struct {
	Subject    string             `json:"subject"`
	Recipients int                `json:"recipients"`
	Sent       int                `json:"sent"`
	Failures   []BroadcastFailure `json:"failures,omitempty"`
}

// Broadcast sends the upcoming schedule to every resolved recipient.
// Deliveries happen one recipient at a time; a rejected address is recorded
// in the result and the run continues. Credential problems abort the run
// since they cannot succeed for later recipients either.
func (s *BroadcastService) Broadcast(ctx context.Context) (*BroadcastResult, error) {
	recipients, err := s.resolveRecipients()
	if err != nil {
		return nil, err
	}

	today := startOfToday()
	rows, _, err := s.presentationRepo.List(repository.PresentationFilter{DateFrom: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming presentations: %w", err)
	}

	subject := fmt.Sprintf("Research Presentation Schedule - %s", time.Now().Format(DateLayout))
	body := composeScheduleBody(rows)

	result := &BroadcastResult{Subject: subject, Recipients: len(recipients)}
	for _, to := range recipients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.mailer.Send(ctx, to, subject, body); err != nil {
			if errors.Is(err, apperrors.ErrMailCredentialsMissing) || errors.Is(err, apperrors.ErrMailAuthFailure) {
				return nil, err
			}
			s.log.WithField("recipient", to).Warnf("broadcast delivery failed: %v", err)
			result.Failures = append(result.Failures, BroadcastFailure{Email: to, Reason: err.Error()})
			continue
		}
		result.Sent++
	}

	s.log.WithFields(map[string]interface{}{
		"recipients": result.Recipients,
		"sent":       result.Sent,
		"failed":     len(result.Failures),
	}).Info("broadcast finished")
	return result, nil
}

// resolveRecipients collects department head and coordinator addresses plus
// every subscriber, normalized and deduplicated
func (s *BroadcastService) resolveRecipients() ([]string, error) {
	departments, err := s.departmentRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	subscriptions, err := s.subscriptionRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	seen := make(map[string]struct{})
	var recipients []string
	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			return
		}
		if _, ok := seen[email]; ok {
			return
		}
		seen[email] = struct{}{}
		recipients = append(recipients, email)
	}

	for _, department := range departments {
		add(department.HeadEmail)
		add(department.CoordEmail)
	}
	for _, subscription := range subscriptions {
		add(subscription.Email)
	}

	if len(recipients) == 0 {
		return nil, apperrors.ErrNoRecipients
	}
	sort.Strings(recipients)
	return recipients, nil
}

// composeScheduleBody renders the upcoming schedule as plain text, one
// presentation per line in chronological order
func composeScheduleBody(rows []models.Presentation) string {
	var b strings.Builder
	b.WriteString("Upcoming research presentations:\n\n")
	if len(rows) == 0 {
		b.WriteString("No presentations are scheduled at this time.\n")
	}
	for _, p := range rows {
		fmt.Fprintf(&b, "%s  %s  %s - %s (%s) at %s\n",
			p.Date.Format(DateLayout), p.StartTime, p.Title, p.Presenter, p.Department.Name, p.Venue)
	}
	b.WriteString("\nThis is an automated message from the research presentation portal.\n")
	return b.String()
}
