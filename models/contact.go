package models

import "time"

// SubmissionStatus represents the workflow state of a contact submission
type SubmissionStatus string

const (
	SubmissionStatusNew        SubmissionStatus = "new"
	SubmissionStatusInProgress SubmissionStatus = "in-progress"
	SubmissionStatusCompleted  SubmissionStatus = "completed"
	SubmissionStatusArchived   SubmissionStatus = "archived"
)

// SubmissionStatuses lists every valid submission status
var SubmissionStatuses = []SubmissionStatus{
	SubmissionStatusNew,
	SubmissionStatusInProgress,
	SubmissionStatusCompleted,
	SubmissionStatusArchived,
}

// IsValidSubmissionStatus reports whether s is a member of the submission status set
func IsValidSubmissionStatus(s string) bool {
	for _, status := range SubmissionStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// ContactSubmission represents a persisted contact-form inquiry
type ContactSubmission struct {
	ID        string           `json:"id" dynamodbav:"id"`
	Name      string           `json:"name" dynamodbav:"name"`
	Email     string           `json:"email" dynamodbav:"email"`
	Phone     string           `json:"phone" dynamodbav:"phone"`
	Service   string           `json:"service" dynamodbav:"service"`
	Message   string           `json:"message" dynamodbav:"message"`
	Timestamp time.Time        `json:"timestamp" dynamodbav:"timestamp"`
	Status    SubmissionStatus `json:"status" dynamodbav:"status"`
	IPAddress string           `json:"ip_address" dynamodbav:"ip_address"`
	UserAgent string           `json:"user_agent" dynamodbav:"user_agent"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty" dynamodbav:"updated_at,omitempty"`
}

// ContactRequest is the payload accepted by POST /api/contact
// @Description Contact form submission with inquiry details
type ContactRequest struct {
	Name    string `json:"name" validate:"required" example:"Jane Doe"`
	Email   string `json:"email" validate:"required" example:"jane@example.com"`
	Phone   string `json:"phone,omitempty" example:"+1 555 010 2030"`
	Service string `json:"service" validate:"required" example:"sox-consulting"`
	Message string `json:"message" validate:"required" example:"We need help preparing for a SOX audit."`
}

// UpdateStatusRequest is the payload accepted by PATCH /api/contact/:id
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required" example:"in-progress"`
}

// RequestMeta carries request-context attributes captured at creation time
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
