package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"kishi-backend/dal"
	"kishi-backend/models"
	"kishi-backend/utils"
	"kishi-backend/utils/logger"
)

const newsletterTableSuffix = "_newsletter_subscribers"

// NewsletterRepository stores subscribers keyed by normalized email, so the
// single-record-per-email invariant is enforced by the table itself.
type NewsletterRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewNewsletterRepository creates a new newsletter subscriber repository
func NewNewsletterRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *NewsletterRepository {
	return &NewsletterRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *NewsletterRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + newsletterTableSuffix
}

// CreateSubscriber persists a new subscriber. The write is conditional on no
// record existing for the email, so two concurrent signups for the same
// address cannot both succeed. Returns ErrDuplicateEmail on an existing
// record regardless of its status.
func (r *NewsletterRepository) CreateSubscriber(ctx context.Context, subscriber *models.NewsletterSubscriber) (*models.NewsletterSubscriber, error) {
	subscriber.ID = utils.GenerateUUID()
	subscriber.SubscribedAt = time.Now().UTC()
	subscriber.Status = models.SubscriberStatusActive
	subscriber.Source = models.SubscriberSourceWebsite

	err := r.db.PutItemIfNotExists(ctx, r.tableName(), subscriber, "email")
	if errors.Is(err, dal.ErrConditionalCheckFailed) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		r.logger.Errorf("Failed to create newsletter subscriber: %v", err)
		return nil, err
	}

	r.logger.Infof("Newsletter subscription saved with ID: %s", subscriber.ID)
	return subscriber, nil
}

// GetSubscriberByEmail looks up a subscriber by normalized email.
// Returns nil without error when no record exists.
func (r *NewsletterRepository) GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	found, err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.tableName(),
		KeyName:   "email",
		KeyValue:  email,
	}, &subscriber)
	if err != nil {
		r.logger.Errorf("Failed to get subscriber by email: %v", err)
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &subscriber, nil
}

// ListSubscribers returns subscribers newest-first, optionally filtered by
// status, truncated to limit.
func (r *NewsletterRepository) ListSubscribers(ctx context.Context, status string, limit int) ([]*models.NewsletterSubscriber, error) {
	limit = clampLimit(limit, DefaultSubscriberLimit)

	// Non-nil so an empty listing marshals as [] rather than null
	subscribers := []*models.NewsletterSubscriber{}
	var err error
	if status == StatusFilterAll {
		err = r.db.Scan(ctx, r.tableName(), &subscribers)
	} else {
		err = r.db.QueryByIndex(ctx, r.tableName(), "status-index", "status", status, MaxListLimit, &subscribers)
	}
	if err != nil {
		r.logger.Errorf("Failed to list newsletter subscribers: %v", err)
		return nil, err
	}

	sort.Slice(subscribers, func(i, j int) bool {
		return subscribers[i].SubscribedAt.After(subscribers[j].SubscribedAt)
	})

	if len(subscribers) > limit {
		subscribers = subscribers[:limit]
	}
	return subscribers, nil
}

// UnsubscribeSubscriber transitions a subscriber to unsubscribed and stamps
// the time. The record is kept, never deleted. Unsubscribing an
// already-unsubscribed record succeeds and refreshes the stamp.
func (r *NewsletterRepository) UnsubscribeSubscriber(ctx context.Context, email string) error {
	updates := map[string]interface{}{
		"status":          string(models.SubscriberStatusUnsubscribed),
		"unsubscribed_at": time.Now().UTC(),
	}

	err := r.db.UpdateItem(ctx, r.tableName(), "email", email, updates)
	if errors.Is(err, dal.ErrConditionalCheckFailed) {
		return ErrSubscriberNotFound
	}
	if err != nil {
		r.logger.Errorf("Failed to unsubscribe %s: %v", email, err)
		return err
	}

	r.logger.Infof("Subscriber %s unsubscribed", email)
	return nil
}
