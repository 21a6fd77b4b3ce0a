package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Mailer sends a single email. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// sesAPI is the slice of the SES client the mailer needs; kept as an
// interface so tests can substitute a fake.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer delivers email through AWS SES.
type SESMailer struct {
	client sesAPI
	sender string
}

// NewSESMailer builds an SES-backed mailer using the default AWS credential chain.
func NewSESMailer(ctx context.Context, region, sender string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

var _ Mailer = (*SESMailer)(nil)

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}

// LogMailer writes messages to the log instead of sending them. Used when
// SES is not configured (local development).
type LogMailer struct {
	log *zap.SugaredLogger
}

// NewLogMailer creates a log-only mailer.
func NewLogMailer(log *zap.SugaredLogger) *LogMailer {
	return &LogMailer{log: log.With("mailer", "log")}
}

var _ Mailer = (*LogMailer)(nil)

func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.Infof("Email suppressed (SES not configured): to=%s subject=%q", to, subject)
	return nil
}
