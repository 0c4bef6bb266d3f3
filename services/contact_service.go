package services

import (
	"context"
	"strings"

	"kishi-backend/models"
	"kishi-backend/notifier"
	"kishi-backend/repository"
	"kishi-backend/utils"
	"kishi-backend/utils/logger"

	"github.com/go-playground/validator/v10"
)

// ContactService validates, persists and announces contact-form submissions.
type ContactService struct {
	repo     repository.ContactRepositoryInterface
	notifier notifier.Notifier
	config   *models.Config
	logger   logger.Logger
	validate *validator.Validate
}

// NewContactService creates a new contact service
func NewContactService(repo repository.ContactRepositoryInterface, n notifier.Notifier, cfg *models.Config, log logger.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		notifier: n,
		config:   cfg,
		logger:   log,
		validate: validator.New(),
	}
}

// SubmitContact validates and normalizes a contact request, persists it and
// dispatches the email notification in the background. The record write
// completes (or definitively fails) before this method returns; notification
// failure never surfaces to the caller.
func (s *ContactService) SubmitContact(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactSubmission, error) {
	// Normalize before validation so whitespace-only fields count as missing
	req.Name = strings.TrimSpace(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Service = strings.TrimSpace(req.Service)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validate.Struct(req); err != nil {
		return nil, ErrMissingFields
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	submission := &models.ContactSubmission{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	submission, err := s.repo.CreateSubmission(storeCtx, submission)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(submission)
	return submission, nil
}

// notifyAsync sends the notification on a detached goroutine with its own
// timeout and error boundary. A missed email is recoverable through the
// admin listing; a lost submission is not, so delivery never gates the
// request outcome.
func (s *ContactService) notifyAsync(submission *models.ContactSubmission) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Errorf("Panic while sending contact notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.config.NotifyTimeout)
		defer cancel()

		if err := s.notifier.SendContactNotification(ctx, submission); err != nil {
			s.logger.Errorf("Error sending email notification for submission %s: %v", submission.ID, err)
			return
		}
		s.logger.Info("Email notification sent successfully")
	}()
}

// ListSubmissions returns submissions newest-first. status may be "all" or
// any status value; limit falls back to the submission default when
// non-positive.
func (s *ContactService) ListSubmissions(ctx context.Context, status string, limit int) ([]*models.ContactSubmission, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	return s.repo.ListSubmissions(storeCtx, status, limit)
}

// UpdateStatus applies a status transition. Any member of the status set may
// move to any other member; non-members are rejected with ErrInvalidStatus.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.IsValidSubmissionStatus(status) {
		return ErrInvalidStatus
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	return s.repo.UpdateSubmissionStatus(storeCtx, id, models.SubmissionStatus(status))
}
