package repository

import (
	"errors"

	"kishi-backend/dal"
	"kishi-backend/models"
	"kishi-backend/utils/logger"
)

// Listing bounds. The public contract disallows unbounded listings; anything
// non-positive falls back to the per-type default, anything above the cap is
// clamped.
const (
	DefaultSubmissionLimit = 50
	DefaultSubscriberLimit = 100
	MaxListLimit           = 500
)

// StatusFilterAll disables status filtering on listings
const StatusFilterAll = "all"

var (
	// ErrDuplicateEmail indicates an insert hit an existing subscriber record
	ErrDuplicateEmail = errors.New("email already subscribed")
	// ErrSubmissionNotFound indicates no submission exists with the given id
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrSubscriberNotFound indicates no subscriber exists with the given email
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

type Repository struct {
	Contact    *ContactRepository
	Newsletter *NewsletterRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Contact:    NewContactRepository(db, cfg, log),
		Newsletter: NewNewsletterRepository(db, cfg, log),
	}
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
