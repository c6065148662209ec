package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcalendar/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func TestTemplateRenderer_Reminder(t *testing.T) {
	r := NewTemplateRenderer()
	subject, html, text, err := r.Render("reminder", &domain.ReminderEmailData{
		Title:        "Review <Q4>",
		Date:         "2025-11-12",
		StartTime:    "10:00",
		Location:     "Room 1",
		MinutesUntil: 1,
		Message:      "10 minutes until Review <Q4> starts.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reminder: Review <Q4> starts in 1 minute", subject)
	assert.Contains(t, html, "Review &lt;Q4&gt;")
	assert.Contains(t, html, "Room 1")
	assert.Contains(t, text, "When: 2025-11-12 at 10:00")
	assert.Contains(t, text, "Where: Room 1")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("welcome", nil)
	assert.Error(t, err)
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := &sesMailer{client: client, source: source("Calendar", "noreply@example.com"), logger: testLogger}

	require.NoError(t, m.Send("me@example.com", "Reminder", "<p>hi</p>", ""))
	assert.Equal(t, "Calendar <noreply@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"me@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Nil(t, client.input.Message.Body.Text)

	client.err = errors.New("throttled")
	assert.ErrorContains(t, m.Send("me@example.com", "s", "", "t"), "throttled")
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, testLogger)
	require.NoError(t, err)
	assert.NoError(t, m.Send("me@example.com", "s", "h", "t"))

	m, err = NewMailer(MailerConfig{Provider: "carrier-pigeon"}, testLogger)
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)

	_, err = NewMailer(MailerConfig{Provider: "ses"}, testLogger)
	assert.Error(t, err)

	m, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "noreply@example.com", SES: SESConfig{Region: "eu-west-1"}}, testLogger)
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}
