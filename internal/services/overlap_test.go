package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcalendar/internal/domain"
)

func TestFindOverlappingEvents(t *testing.T) {
	existing := []*domain.Event{
		makeEvent("a", "Breakfast", "2025-11-12", "08:00", "09:00"),
		makeEvent("b", "Review", "2025-11-12", "10:00", "11:00"),
		makeEvent("c", "Lunch", "2025-11-12", "12:00", "13:00"),
		makeEvent("d", "Review", "2025-11-13", "10:00", "11:00"),
	}

	tests := []struct {
		name      string
		candidate *domain.Event
		want      []string
	}{
		{"touching end is not overlap", makeEvent("", "x", "2025-11-12", "09:00", "10:00"), []string{}},
		{"contained", makeEvent("", "x", "2025-11-12", "10:15", "10:45"), []string{"b"}},
		{"spans several in input order", makeEvent("", "x", "2025-11-12", "08:30", "12:30"), []string{"a", "b", "c"}},
		{"other date ignored", makeEvent("", "x", "2025-11-14", "10:00", "11:00"), []string{}},
		{"edit skips itself", makeEvent("b", "Review", "2025-11-12", "10:00", "11:00"), []string{}},
		{"edit still sees others", makeEvent("b", "Review", "2025-11-12", "08:30", "10:30"), []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindOverlappingEvents(tt.candidate, existing)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFindOverlappingEvents_EmptyInput(t *testing.T) {
	got := FindOverlappingEvents(makeEvent("", "x", "2025-11-12", "08:00", "09:00"), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
