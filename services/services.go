package services

import (
	"errors"

	"kishi-backend/models"
	"kishi-backend/notifier"
	"kishi-backend/repository"
	"kishi-backend/utils/logger"
)

// Validation errors. Detected and returned before any side effect occurs.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidStatus = errors.New("invalid status")
)

type Services struct {
	Contact    *ContactService
	Newsletter *NewsletterService
}

func NewServices(repo *repository.Repository, n notifier.Notifier, cfg *models.Config, log logger.Logger) *Services {
	return &Services{
		Contact:    NewContactService(repo.Contact, n, cfg, log),
		Newsletter: NewNewsletterService(repo.Newsletter, cfg, log),
	}
}
