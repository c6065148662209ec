package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcalendar/internal/domain"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

type fakeRenderer struct {
	name string
	err  error
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	r.name = name
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.ReminderEmailData)
	return "Reminder: " + d.Title, "<p>" + d.Message + "</p>", d.Message, nil
}

func TestEmailService_SendReminder(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, testLogger)

	err := svc.SendReminder(context.Background(), &domain.ReminderEmailData{Email: "me@example.com", Title: "Review", Message: "10 minutes until Review starts."})
	require.NoError(t, err)
	assert.Equal(t, "reminder", renderer.name)
	assert.Equal(t, []string{"me@example.com|Reminder: Review"}, mailer.sent)

	assert.Error(t, svc.SendReminder(context.Background(), nil))

	renderer.err = errors.New("missing template")
	assert.ErrorContains(t, svc.SendReminder(context.Background(), &domain.ReminderEmailData{}), "render")

	renderer.err = nil
	mailer.err = errors.New("ses throttled")
	assert.ErrorContains(t, svc.SendReminder(context.Background(), &domain.ReminderEmailData{Title: "x"}), "ses throttled")
}
