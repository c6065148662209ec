package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcalendar/internal/domain"
	"eventcalendar/internal/metrics"
)

type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.ReminderEmailData
	err  error
}

func (f *fakeEmailService) SendReminder(ctx context.Context, data *domain.ReminderEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func TestReminderScheduler_Tick(t *testing.T) {
	e := makeEvent("a", "Review", "2025-11-12", "10:00", "11:00")
	e.Location = "Room 3"
	e.NotificationTime = 15
	repo := newFakeEventRepo(e, makeEvent("b", "Lunch", "2025-11-12", "12:00", "13:00"))
	email := &fakeEmailService{}
	s := NewReminderScheduler(repo, email, "me@example.com", testLogger, metrics.New())
	s.now = func() time.Time { return time.Date(2025, 11, 12, 9, 50, 0, 0, time.UTC) }

	sent, err := s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, email.sent, 1)
	assert.Equal(t, &domain.ReminderEmailData{
		Email:        "me@example.com",
		Title:        "Review",
		Date:         "2025-11-12",
		StartTime:    "10:00",
		Location:     "Room 3",
		MinutesUntil: 10,
		Message:      "15 minutes until Review starts.",
	}, email.sent[0])

	sent, err = s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestReminderScheduler_FailedDeliveryRetries(t *testing.T) {
	e := makeEvent("a", "Review", "2025-11-12", "10:00", "11:00")
	e.NotificationTime = 15
	email := &fakeEmailService{err: errors.New("smtp down")}
	s := NewReminderScheduler(newFakeEventRepo(e), email, "me@example.com", testLogger, nil)
	s.now = func() time.Time { return time.Date(2025, 11, 12, 9, 50, 0, 0, time.UTC) }

	sent, err := s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	email.err = nil
	sent, err = s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestReminderScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewReminderScheduler(newFakeEventRepo(), &fakeEmailService{}, "", testLogger, nil)
	assert.Error(t, s.Start(context.Background(), "not a schedule"))

	require.NoError(t, s.Start(context.Background(), "@every 1h"))
	s.Stop()
}

func TestReminderScheduler_UsesLocation(t *testing.T) {
	e := makeEvent("a", "Review", "2025-11-12", "10:00", "11:00")
	e.NotificationTime = 15
	email := &fakeEmailService{}
	s := NewReminderScheduler(newFakeEventRepo(e), email, "me@example.com", testLogger, nil)
	// 00:50 UTC is 09:50 in Seoul.
	s.now = func() time.Time { return time.Date(2025, 11, 12, 0, 50, 0, 0, time.UTC) }
	s.SetLocation(time.FixedZone("KST", 9*60*60))

	sent, err := s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestReminderScheduler_ForgetsStartedAndDeletedEvents(t *testing.T) {
	review := makeEvent("a", "Review", "2025-11-12", "10:00", "11:00")
	review.NotificationTime = 15
	standup := makeEvent("c", "Standup", "2025-11-12", "10:30", "11:00")
	standup.NotificationTime = 60
	repo := newFakeEventRepo(review, standup)
	email := &fakeEmailService{}
	s := NewReminderScheduler(repo, email, "me@example.com", testLogger, nil)
	clock := time.Date(2025, 11, 12, 9, 50, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	sent, err := s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, s.notified, 2)

	require.NoError(t, repo.DeleteEvent(context.Background(), "c"))
	clock = clock.Add(5 * time.Minute)
	sent, err = s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, map[string]struct{}{"a": {}}, s.notified)

	clock = time.Date(2025, 11, 12, 10, 5, 0, 0, time.UTC)
	sent, err = s.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, s.notified)
}
