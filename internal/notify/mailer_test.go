package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	return &ses.SendEmailOutput{}, nil
}

func TestSESMailerSend(t *testing.T) {
	api := &fakeSES{}
	mailer := &SESMailer{client: api, sender: "hr@school.example"}

	err := mailer.Send(context.Background(), "applicant@example.com", "Application Received", "Hello")
	require.NoError(t, err)
	require.NotNil(t, api.input)

	assert.Equal(t, "hr@school.example", *api.input.Source)
	require.Len(t, api.input.Destination.ToAddresses, 1)
	assert.Equal(t, "applicant@example.com", api.input.Destination.ToAddresses[0])
	assert.Equal(t, "Application Received", *api.input.Message.Subject.Data)
	assert.Equal(t, "Hello", *api.input.Message.Body.Text.Data)
}
