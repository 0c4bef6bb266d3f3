package services

import (
	"context"

	"kishi-backend/models"
)

// ContactServiceInterface defines the contract for contact submission operations
type ContactServiceInterface interface {
	SubmitContact(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactSubmission, error)
	ListSubmissions(ctx context.Context, status string, limit int) ([]*models.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// NewsletterServiceInterface defines the contract for newsletter operations
type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, req *models.NewsletterRequest, meta models.RequestMeta) (*models.NewsletterSubscriber, error)
	ListSubscribers(ctx context.Context, status string, limit int) ([]*models.NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, email string) error
}
