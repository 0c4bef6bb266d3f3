package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"kishi-backend/dal"
	"kishi-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateSubscriberAssignsServerFields(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("PutItemIfNotExists", mock.Anything, "test_newsletter_subscribers", mock.Anything, "email").Return(nil)

	subscriber, err := repo.CreateSubscriber(context.Background(), &models.NewsletterSubscriber{Email: "a@b.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, subscriber.ID)
	assert.Equal(t, models.SubscriberStatusActive, subscriber.Status)
	assert.Equal(t, models.SubscriberSourceWebsite, subscriber.Source)
	assert.False(t, subscriber.SubscribedAt.IsZero())
	db.AssertExpectations(t)
}

func TestCreateSubscriberDuplicate(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("PutItemIfNotExists", mock.Anything, "test_newsletter_subscribers", mock.Anything, "email").
		Return(dal.ErrConditionalCheckFailed)

	_, err := repo.CreateSubscriber(context.Background(), &models.NewsletterSubscriber{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetSubscriberByEmail(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("GetItem", mock.Anything, models.QueryConfig{
		TableName: "test_newsletter_subscribers",
		KeyName:   "email",
		KeyValue:  "a@b.com",
	}, mock.Anything).Return(true, nil)

	subscriber, err := repo.GetSubscriberByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.NotNil(t, subscriber)
}

func TestGetSubscriberByEmailAbsent(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("GetItem", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	subscriber, err := repo.GetSubscriberByEmail(context.Background(), "nobody@b.com")
	require.NoError(t, err)
	assert.Nil(t, subscriber)
}

func TestListSubscribersNewestFirst(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	db.On("QueryByIndex", mock.Anything, "test_newsletter_subscribers", "status-index", "status", "active", int32(MaxListLimit), mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(6).(*[]*models.NewsletterSubscriber)
			*out = []*models.NewsletterSubscriber{
				{ID: "old", SubscribedAt: base},
				{ID: "new", SubscribedAt: base.Add(time.Hour)},
			}
		}).Return(nil)

	subscribers, err := repo.ListSubscribers(context.Background(), "active", 0)
	require.NoError(t, err)

	require.Len(t, subscribers, 2)
	assert.Equal(t, "new", subscribers[0].ID)
	assert.Equal(t, "old", subscribers[1].ID)
}

func TestListSubscribersEmptyIsNonNil(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("QueryByIndex", mock.Anything, "test_newsletter_subscribers", "status-index", "status", "unsubscribed", int32(MaxListLimit), mock.Anything).
		Return(nil)

	subscribers, err := repo.ListSubscribers(context.Background(), "unsubscribed", 0)
	require.NoError(t, err)
	assert.NotNil(t, subscribers)
	assert.Len(t, subscribers, 0)
}

func TestListSubscribersAllUsesScan(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("Scan", mock.Anything, "test_newsletter_subscribers", mock.Anything).Return(nil)

	_, err := repo.ListSubscribers(context.Background(), StatusFilterAll, 0)
	require.NoError(t, err)
	db.AssertNotCalled(t, "QueryByIndex")
}

func TestUnsubscribeSubscriber(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("UpdateItem", mock.Anything, "test_newsletter_subscribers", "email", "a@b.com", mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasStamp := updates["unsubscribed_at"]
		return updates["status"] == string(models.SubscriberStatusUnsubscribed) && hasStamp
	})).Return(nil)

	err := repo.UnsubscribeSubscriber(context.Background(), "a@b.com")
	assert.NoError(t, err)
	db.AssertExpectations(t)
}

func TestUnsubscribeSubscriberNotFound(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("UpdateItem", mock.Anything, "test_newsletter_subscribers", "email", "nobody@b.com", mock.Anything).
		Return(dal.ErrConditionalCheckFailed)

	err := repo.UnsubscribeSubscriber(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, ErrSubscriberNotFound)
}

func TestUnsubscribeSubscriberStorageError(t *testing.T) {
	db := new(MockDatabaseClient)
	repo := NewNewsletterRepository(db, testConfig(), testLogger())

	db.On("UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("boom"))

	err := repo.UnsubscribeSubscriber(context.Background(), "a@b.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSubscriberNotFound)
}
