package repository

import (
	"context"

	"kishi-backend/models"
)

// ContactRepositoryInterface defines the contract for contact submission storage
type ContactRepositoryInterface interface {
	CreateSubmission(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error)
	ListSubmissions(ctx context.Context, status string, limit int) ([]*models.ContactSubmission, error)
	UpdateSubmissionStatus(ctx context.Context, id string, status models.SubmissionStatus) error
}

// NewsletterRepositoryInterface defines the contract for subscriber storage
type NewsletterRepositoryInterface interface {
	CreateSubscriber(ctx context.Context, subscriber *models.NewsletterSubscriber) (*models.NewsletterSubscriber, error)
	GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	ListSubscribers(ctx context.Context, status string, limit int) ([]*models.NewsletterSubscriber, error)
	UnsubscribeSubscriber(ctx context.Context, email string) error
}
