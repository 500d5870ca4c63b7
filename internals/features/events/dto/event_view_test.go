package dto

import (
	"testing"
	"time"

	"chapterhub_backend/internals/features/events/model"
)

func capPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestIsEventFull(t *testing.T) {
	cases := []struct {
		name    string
		max     *int
		current int
		want    bool
	}{
		{"uncapped never full", nil, 5000, false},
		{"under capacity", capPtr(10), 9, false},
		{"at capacity", capPtr(10), 10, true},
		{"over capacity", capPtr(10), 11, true},
		{"zero capacity", capPtr(0), 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &model.EventModel{
				EventMaxParticipants:     tc.max,
				EventCurrentParticipants: tc.current,
			}
			if got := IsEventFull(m); got != tc.want {
				t.Errorf("IsEventFull = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsRegistrationOpenAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name string
		m    model.EventModel
		want bool
	}{
		{
			"open: upcoming, before deadline, not full",
			model.EventModel{EventStatus: model.EventStatusUpcoming, EventDate: future},
			true,
		},
		{
			"closed: cancelled",
			model.EventModel{EventStatus: model.EventStatusCancelled, EventDate: future},
			false,
		},
		{
			"closed: ongoing",
			model.EventModel{EventStatus: model.EventStatusOngoing, EventDate: future},
			false,
		},
		{
			"closed: explicit deadline passed, event still ahead",
			model.EventModel{EventStatus: model.EventStatusUpcoming, EventDate: future, EventRegistrationDeadline: &past},
			false,
		},
		{
			"closed: no deadline, event date passed",
			model.EventModel{EventStatus: model.EventStatusUpcoming, EventDate: past},
			false,
		},
		{
			"closed: full",
			model.EventModel{
				EventStatus: model.EventStatusUpcoming, EventDate: future,
				EventMaxParticipants: capPtr(2), EventCurrentParticipants: 2,
			},
			false,
		},
		{
			"open: capped with room",
			model.EventModel{
				EventStatus: model.EventStatusUpcoming, EventDate: future,
				EventMaxParticipants: capPtr(2), EventCurrentParticipants: 1,
			},
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRegistrationOpenAt(&tc.m, now); got != tc.want {
				t.Errorf("isRegistrationOpenAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTimeUntilAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"days and hours", now.Add(50 * time.Hour), "2 days 2 hours"},
		{"hours and minutes", now.Add(3*time.Hour + 30*time.Minute), "3 hours 30 minutes"},
		{"minutes only", now.Add(45 * time.Minute), "45 minutes"},
		{"exactly now", now, "Event has passed"},
		{"in the past", now.Add(-time.Minute), "Event has passed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := timeUntilAt(now, tc.at); got != tc.want {
				t.Errorf("timeUntilAt = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToEventDisplayResponse(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := model.EventModel{
		EventTitle:               "Summit",
		EventDate:                time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		EventTime:                strPtr("14:30"),
		EventStatus:              model.EventStatusUpcoming,
		EventMaxParticipants:     capPtr(100),
		EventCurrentParticipants: 60,
		EventImageURL:            "https://cdn.example.org/summit.webp",
	}

	got := toEventDisplayResponseAt(&m, now)

	if got.DisplayDate != "Saturday, June 14, 2025" {
		t.Errorf("display_date = %q", got.DisplayDate)
	}
	if got.DisplayTime == nil || *got.DisplayTime != "2:30 PM" {
		t.Errorf("display_time = %v, want 2:30 PM", got.DisplayTime)
	}
	if !got.IsRegistrationOpen {
		t.Error("registration should be open")
	}
	if got.IsFull {
		t.Error("event should not be full")
	}
	if got.SpotsLeft == nil || *got.SpotsLeft != 40 {
		t.Errorf("spots_left = %v, want 40", got.SpotsLeft)
	}
	if !got.HasPoster {
		t.Error("has_poster should be true")
	}
	if got.TimeUntil == "" || got.TimeUntil == "Event has passed" {
		t.Errorf("time_until = %q", got.TimeUntil)
	}
}

func TestDisplayResponseUncappedAndOversold(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	uncapped := model.EventModel{
		EventStatus:              model.EventStatusUpcoming,
		EventDate:                now.Add(24 * time.Hour),
		EventCurrentParticipants: 9999,
	}
	got := toEventDisplayResponseAt(&uncapped, now)
	if got.SpotsLeft != nil {
		t.Errorf("uncapped spots_left = %v, want nil", got.SpotsLeft)
	}
	if got.HasPoster {
		t.Error("has_poster should be false without an image URL")
	}

	// walk-in override can push the counter past capacity; never show negative
	oversold := model.EventModel{
		EventStatus:              model.EventStatusUpcoming,
		EventDate:                now.Add(24 * time.Hour),
		EventMaxParticipants:     capPtr(10),
		EventCurrentParticipants: 15,
	}
	got = toEventDisplayResponseAt(&oversold, now)
	if got.SpotsLeft == nil || *got.SpotsLeft != 0 {
		t.Errorf("oversold spots_left = %v, want 0", got.SpotsLeft)
	}
	if !got.IsFull {
		t.Error("oversold event must report full")
	}
}
