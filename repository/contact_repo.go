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

const contactTableSuffix = "_contact_submissions"

type ContactRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewContactRepository creates a new contact submission repository
func NewContactRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *ContactRepository {
	return &ContactRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *ContactRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + contactTableSuffix
}

// CreateSubmission persists a new contact submission with a server-assigned
// id, creation timestamp and initial status.
func (r *ContactRepository) CreateSubmission(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	submission.ID = utils.GenerateUUID()
	submission.Timestamp = time.Now().UTC()
	submission.Status = models.SubmissionStatusNew

	if err := r.db.PutItem(ctx, r.tableName(), submission); err != nil {
		r.logger.Errorf("Failed to create contact submission: %v", err)
		return nil, err
	}

	r.logger.Infof("Contact submission saved with ID: %s", submission.ID)
	return submission, nil
}

// ListSubmissions returns submissions newest-first, optionally filtered by
// status, truncated to limit.
func (r *ContactRepository) ListSubmissions(ctx context.Context, status string, limit int) ([]*models.ContactSubmission, error) {
	limit = clampLimit(limit, DefaultSubmissionLimit)

	// Non-nil so an empty listing marshals as [] rather than null
	submissions := []*models.ContactSubmission{}
	var err error
	if status == StatusFilterAll {
		err = r.db.Scan(ctx, r.tableName(), &submissions)
	} else {
		err = r.db.QueryByIndex(ctx, r.tableName(), "status-index", "status", status, MaxListLimit, &submissions)
	}
	if err != nil {
		r.logger.Errorf("Failed to list contact submissions: %v", err)
		return nil, err
	}

	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].Timestamp.After(submissions[j].Timestamp)
	})

	if len(submissions) > limit {
		submissions = submissions[:limit]
	}
	return submissions, nil
}

// UpdateSubmissionStatus applies a status transition and stamps the update
// time. Returns ErrSubmissionNotFound when no record with that id exists.
func (r *ContactRepository) UpdateSubmissionStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}

	err := r.db.UpdateItem(ctx, r.tableName(), "id", id, updates)
	if errors.Is(err, dal.ErrConditionalCheckFailed) {
		return ErrSubmissionNotFound
	}
	if err != nil {
		r.logger.Errorf("Failed to update submission %s status: %v", id, err)
		return err
	}

	r.logger.Infof("Submission %s status updated to %s", id, status)
	return nil
}
