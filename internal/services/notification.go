package services

import (
	"fmt"
	"math"
	"time"

	"eventcalendar/internal/domain"
)

// DueNotifications returns a reminder for every event whose start is within
// its notification window of now: 0 < minutes until start <= notification
// time. Events without a notification time, or already in notified, are
// skipped. Event dates and times are read in now's location.
func DueNotifications(events []*domain.Event, now time.Time, notified map[string]struct{}) []domain.Notification {
	out := make([]domain.Notification, 0)
	for _, e := range events {
		if e.NotificationTime <= 0 {
			continue
		}
		if _, done := notified[e.ID]; done {
			continue
		}
		start := e.Date.At(e.StartTime, now.Location())
		diff := start.Sub(now).Minutes()
		if diff <= 0 || diff > float64(e.NotificationTime) {
			continue
		}
		out = append(out, domain.Notification{
			EventID:      e.ID,
			Title:        e.Title,
			MinutesUntil: int(math.Ceil(diff)),
			Message:      fmt.Sprintf("%d minutes until %s starts.", e.NotificationTime, e.Title),
		})
	}
	return out
}
