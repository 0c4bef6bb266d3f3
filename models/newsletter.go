package models

import "time"

// SubscriberStatus represents the lifecycle state of a newsletter subscriber
type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// SubscriberSource is the channel a subscription came in through.
// The website form is currently the only source.
const SubscriberSourceWebsite = "website"

// IsValidSubscriberStatus reports whether s is a member of the subscriber status set
func IsValidSubscriberStatus(s string) bool {
	return s == string(SubscriberStatusActive) || s == string(SubscriberStatusUnsubscribed)
}

// NewsletterSubscriber represents a persisted newsletter signup.
// The store keys subscribers by normalized email, so at most one record
// exists per address across all states.
type NewsletterSubscriber struct {
	ID             string           `json:"id" dynamodbav:"id"`
	Email          string           `json:"email" dynamodbav:"email"`
	SubscribedAt   time.Time        `json:"subscribed_at" dynamodbav:"subscribed_at"`
	Status         SubscriberStatus `json:"status" dynamodbav:"status"`
	Source         string           `json:"source" dynamodbav:"source"`
	IPAddress      string           `json:"ip_address" dynamodbav:"ip_address"`
	UserAgent      string           `json:"user_agent" dynamodbav:"user_agent"`
	UnsubscribedAt *time.Time       `json:"unsubscribed_at,omitempty" dynamodbav:"unsubscribed_at,omitempty"`
}

// NewsletterRequest is the payload accepted by POST /api/newsletter
type NewsletterRequest struct {
	Email string `json:"email" validate:"required" example:"jane@example.com"`
}

// UnsubscribeRequest is the payload accepted by DELETE /api/newsletter/:id
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required" example:"jane@example.com"`
}
