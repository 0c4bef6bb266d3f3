package services

import (
	"context"

	"kishi-backend/models"
	"kishi-backend/repository"
	"kishi-backend/utils"
	"kishi-backend/utils/logger"
)

// NewsletterService validates and persists newsletter subscriptions.
type NewsletterService struct {
	repo   repository.NewsletterRepositoryInterface
	config *models.Config
	logger logger.Logger
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(repo repository.NewsletterRepositoryInterface, cfg *models.Config, log logger.Logger) *NewsletterService {
	return &NewsletterService{
		repo:   repo,
		config: cfg,
		logger: log,
	}
}

// Subscribe validates and normalizes the email, then inserts the subscriber.
// The store enforces one record per normalized email, so a concurrent
// duplicate signup surfaces as repository.ErrDuplicateEmail from exactly one
// of the two requests.
func (s *NewsletterService) Subscribe(ctx context.Context, req *models.NewsletterRequest, meta models.RequestMeta) (*models.NewsletterSubscriber, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" {
		return nil, ErrMissingFields
	}
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	subscriber := &models.NewsletterSubscriber{
		Email:     email,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	return s.repo.CreateSubscriber(storeCtx, subscriber)
}

// ListSubscribers returns subscribers newest-first. status may be "all",
// "active" or "unsubscribed"; limit falls back to the subscriber default when
// non-positive.
func (s *NewsletterService) ListSubscribers(ctx context.Context, status string, limit int) ([]*models.NewsletterSubscriber, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	return s.repo.ListSubscribers(storeCtx, status, limit)
}

// Unsubscribe transitions the subscriber for the normalized email to
// unsubscribed. Unknown emails surface repository.ErrSubscriberNotFound;
// re-unsubscribing an already-unsubscribed record is a no-op success.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrMissingFields
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	return s.repo.UnsubscribeSubscriber(storeCtx, email)
}
