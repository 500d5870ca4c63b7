package dto

import (
	"fmt"
	"time"

	"chapterhub_backend/internals/features/events/model"
)

// Display-only derivations for a single event. Everything here is pure:
// no DB, no mutation of the model.

type EventDisplayResponse struct {
	EventResponse
	DisplayDate        string  `json:"display_date"`
	DisplayTime        *string `json:"display_time,omitempty"`
	TimeUntil          string  `json:"time_until"`
	IsRegistrationOpen bool    `json:"is_registration_open"`
	IsFull             bool    `json:"is_full"`
	SpotsLeft          *int    `json:"spots_left,omitempty"` // nil when uncapped
	HasPoster          bool    `json:"has_poster"`
}

// IsEventFull reports whether a capacity limit is set and reached.
// An uncapped event is never full, whatever the counter says.
func IsEventFull(m *model.EventModel) bool {
	if m.EventMaxParticipants == nil {
		return false
	}
	return m.EventCurrentParticipants >= *m.EventMaxParticipants
}

// IsRegistrationOpen: before the effective deadline, status upcoming,
// and not full.
func IsRegistrationOpen(m *model.EventModel) bool {
	return isRegistrationOpenAt(m, time.Now())
}

func isRegistrationOpenAt(m *model.EventModel, now time.Time) bool {
	if m.EventStatus != model.EventStatusUpcoming {
		return false
	}
	if !now.Before(m.EffectiveDeadline()) {
		return false
	}
	return !IsEventFull(m)
}

// TimeUntilEvent renders a coarse countdown to the event date.
func TimeUntilEvent(eventDate time.Time) string {
	return timeUntilAt(time.Now(), eventDate)
}

func timeUntilAt(now, eventDate time.Time) string {
	d := eventDate.Sub(now)
	if d <= 0 {
		return "Event has passed"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d days %d hours", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d hours %d minutes", hours, minutes)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}

// ToEventDisplayResponse augments the plain response with the view-model
// fields the public site renders.
func ToEventDisplayResponse(m *model.EventModel) *EventDisplayResponse {
	return toEventDisplayResponseAt(m, time.Now())
}

func toEventDisplayResponseAt(m *model.EventModel, now time.Time) *EventDisplayResponse {
	resp := EventDisplayResponse{
		EventResponse:      *ToEventResponse(m),
		DisplayDate:        m.EventDate.Format("Monday, January 2, 2006"),
		TimeUntil:          timeUntilAt(now, m.EventDate),
		IsRegistrationOpen: isRegistrationOpenAt(m, now),
		IsFull:             IsEventFull(m),
		HasPoster:          m.EventImageURL != "",
	}
	if m.EventTime != nil {
		if t, err := time.Parse("15:04", *m.EventTime); err == nil {
			s := t.Format("3:04 PM")
			resp.DisplayTime = &s
		}
	}
	if m.EventMaxParticipants != nil {
		left := *m.EventMaxParticipants - m.EventCurrentParticipants
		if left < 0 {
			left = 0
		}
		resp.SpotsLeft = &left
	}
	return &resp
}

func ToEventDisplayResponseList(models []model.EventModel) []EventDisplayResponse {
	now := time.Now()
	out := make([]EventDisplayResponse, 0, len(models))
	for i := range models {
		out = append(out, *toEventDisplayResponseAt(&models[i], now))
	}
	return out
}
