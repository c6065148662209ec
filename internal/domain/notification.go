package domain

// Notification is an in-app reminder for an event that starts soon.
type Notification struct {
	EventID      string `json:"event_id"`
	Title        string `json:"title"`
	MinutesUntil int    `json:"minutes_until"`
	Message      string `json:"message"`
}
