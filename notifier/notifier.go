package notifier

import (
	"context"
	"fmt"

	"kishi-backend/models"
	"kishi-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Notifier delivers best-effort notifications about new contact submissions.
// Callers absorb failures; delivery never gates the submitting request.
type Notifier interface {
	SendContactNotification(ctx context.Context, submission *models.ContactSubmission) error
}

// SESNotifier sends notification emails through Amazon SES.
type SESNotifier struct {
	client *sesv2.Client
	config *models.Config
	logger logger.Logger
}

// NewSESNotifier creates an SES-backed notifier. When no from/to address is
// configured it returns a disabled notifier that logs and drops every send.
func NewSESNotifier(cfg *models.Config, log logger.Logger) (Notifier, error) {
	if cfg.EmailFrom == "" || cfg.EmailTo == "" {
		log.Warn("Email notifications disabled: email_from/email_to not configured")
		return &disabledNotifier{logger: log}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"", // session token
		))
	}

	log.Info("SES notifier initialized successfully")
	return &SESNotifier{
		client: sesv2.NewFromConfig(awsCfg),
		config: cfg,
		logger: log,
	}, nil
}

// SendContactNotification emails the configured recipient about a new
// contact submission.
func (n *SESNotifier) SendContactNotification(ctx context.Context, submission *models.ContactSubmission) error {
	subject := fmt.Sprintf("New Contact Form Submission - %s", submission.Service)
	body := BuildContactNotificationBody(submission)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.config.EmailFrom),
		Destination: &types.Destination{
			ToAddresses: []string{n.config.EmailTo},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	n.logger.Infof("Notification email sent for submission %s", submission.ID)
	return nil
}

// BuildContactNotificationBody renders the notification HTML carrying every
// submitted field and the assigned record id.
func BuildContactNotificationBody(submission *models.ContactSubmission) string {
	phone := submission.Phone
	if phone == "" {
		phone = "Not provided"
	}

	return fmt.Sprintf(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Service:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
<hr>
<p><strong>Submitted:</strong> %s</p>
<p><strong>Submission ID:</strong> %s</p>`,
		submission.Name,
		submission.Email,
		phone,
		submission.Service,
		submission.Message,
		submission.Timestamp.Format("2006-01-02 15:04:05 MST"),
		submission.ID,
	)
}

// disabledNotifier drops notifications when email is not configured.
type disabledNotifier struct {
	logger logger.Logger
}

func (n *disabledNotifier) SendContactNotification(_ context.Context, submission *models.ContactSubmission) error {
	n.logger.Debugf("Email notifications disabled, dropping notification for submission %s", submission.ID)
	return nil
}
