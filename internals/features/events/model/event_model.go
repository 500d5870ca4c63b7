package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event statuses. Transitions are deliberately unrestricted: admins may write
// any valid status from any prior status (manual corrections included).
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event type tags. Free-form values survive in old rows; new writes are
// validated against this set plus "other".
const (
	EventTypeWorkshop    = "workshop"
	EventTypeLecture     = "lecture"
	EventTypeConference  = "conference"
	EventTypeCompetition = "competition"
	EventTypeWebinar     = "webinar"
	EventTypeGeneral     = "general"
	EventTypeOther       = "other"
)

var EventStatuses = []string{
	EventStatusUpcoming,
	EventStatusOngoing,
	EventStatusCompleted,
	EventStatusCancelled,
}

var EventTypes = []string{
	EventTypeWorkshop,
	EventTypeLecture,
	EventTypeConference,
	EventTypeCompetition,
	EventTypeWebinar,
	EventTypeGeneral,
	EventTypeOther,
}

func IsValidEventStatus(s string) bool {
	for _, v := range EventStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidEventType(s string) bool {
	for _, v := range EventTypes {
		if v == s {
			return true
		}
	}
	return false
}

type EventModel struct {
	EventID                   uuid.UUID  `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTitle                string     `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventSlug                 string     `gorm:"column:event_slug;type:varchar(100);not null" json:"event_slug"`
	EventDescription          string     `gorm:"column:event_description;type:text" json:"event_description"`
	EventDate                 time.Time  `gorm:"column:event_date;not null;index:idx_events_date" json:"event_date"`
	EventTime                 *string    `gorm:"column:event_time;type:varchar(5)" json:"event_time"` // "15:04", optional
	EventLocation             string     `gorm:"column:event_location;type:varchar(255);not null" json:"event_location"`
	EventVenueDetails         string     `gorm:"column:event_venue_details;type:text" json:"event_venue_details"`
	EventType                 string     `gorm:"column:event_type;type:varchar(50);default:general" json:"event_type"`
	EventRegistrationURL      string     `gorm:"column:event_registration_url;type:text" json:"event_registration_url"`
	EventMaxParticipants      *int       `gorm:"column:event_max_participants" json:"event_max_participants"` // nil = uncapped
	EventRegistrationDeadline *time.Time `gorm:"column:event_registration_deadline;type:timestamptz" json:"event_registration_deadline"`
	EventIsFeatured           bool       `gorm:"column:event_is_featured;default:false" json:"event_is_featured"`
	EventStatus               string     `gorm:"column:event_status;type:varchar(20);default:upcoming;index:idx_events_status" json:"event_status"`
	EventImageURL             string     `gorm:"column:event_image_url;type:text" json:"event_image_url"`
	EventCurrentParticipants  int        `gorm:"column:event_current_participants;default:0" json:"event_current_participants"`
	EventCreatedAt            time.Time  `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt            time.Time  `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	return nil
}

// EffectiveDeadline returns the registration deadline, falling back to the
// event date when no explicit deadline is set.
func (m *EventModel) EffectiveDeadline() time.Time {
	if m.EventRegistrationDeadline != nil {
		return *m.EventRegistrationDeadline
	}
	return m.EventDate
}
