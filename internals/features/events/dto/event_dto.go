package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"chapterhub_backend/internals/features/events/model"
	helper "chapterhub_backend/internals/helpers"
)

const (
	dtFmt   = "2006-01-02 15:04:05"
	dateFmt = "2006-01-02"
)

//
// ========= Request DTO =========
//

// CreateEventRequest — dates arrive as strings so the same struct parses
// from JSON and multipart form bodies. event_slug is derived from the
// title when empty.
type CreateEventRequest struct {
	EventTitle                string  `json:"event_title" form:"event_title" validate:"required,max=255"`
	EventSlug                 string  `json:"event_slug" form:"event_slug"`
	EventDescription          string  `json:"event_description" form:"event_description"`
	EventDate                 string  `json:"event_date" form:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime                 *string `json:"event_time" form:"event_time" validate:"omitempty,datetime=15:04"`
	EventLocation             string  `json:"event_location" form:"event_location" validate:"required,max=255"`
	EventVenueDetails         string  `json:"event_venue_details" form:"event_venue_details"`
	EventType                 string  `json:"event_type" form:"event_type"`
	EventRegistrationURL      string  `json:"event_registration_url" form:"event_registration_url" validate:"omitempty,url"`
	EventMaxParticipants      *int    `json:"event_max_participants" form:"event_max_participants" validate:"omitempty,min=0"`
	EventRegistrationDeadline *string `json:"event_registration_deadline" form:"event_registration_deadline" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	EventIsFeatured           bool    `json:"event_is_featured" form:"event_is_featured"`
}

// UpdateEventRequest is a partial PATCH — pointer fields, nil means untouched.
type UpdateEventRequest struct {
	EventTitle                *string `json:"event_title" form:"event_title" validate:"omitempty,max=255"`
	EventSlug                 *string `json:"event_slug" form:"event_slug"`
	EventDescription          *string `json:"event_description" form:"event_description"`
	EventDate                 *string `json:"event_date" form:"event_date" validate:"omitempty,datetime=2006-01-02"`
	EventTime                 *string `json:"event_time" form:"event_time" validate:"omitempty,datetime=15:04"`
	EventLocation             *string `json:"event_location" form:"event_location" validate:"omitempty,max=255"`
	EventVenueDetails         *string `json:"event_venue_details" form:"event_venue_details"`
	EventType                 *string `json:"event_type" form:"event_type"`
	EventRegistrationURL      *string `json:"event_registration_url" form:"event_registration_url" validate:"omitempty,url"`
	EventMaxParticipants      *int    `json:"event_max_participants" form:"event_max_participants" validate:"omitempty,min=0"`
	EventRegistrationDeadline *string `json:"event_registration_deadline" form:"event_registration_deadline" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	EventIsFeatured           *bool   `json:"event_is_featured" form:"event_is_featured"`
}

type UpdateEventStatusRequest struct {
	EventStatus string `json:"event_status" validate:"required"`
}

type UpdateParticipantCountRequest struct {
	EventCurrentParticipants int `json:"event_current_participants"`
}

type RegisterMemberRequest struct {
	MemberName   string `json:"member_name" validate:"required,max=255"`
	MemberEmail  string `json:"member_email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Organization string `json:"organization" validate:"omitempty,max=255"`
}

//
// ========= Response DTO =========
//

type EventResponse struct {
	EventID                   uuid.UUID `json:"event_id"`
	EventTitle                string    `json:"event_title"`
	EventSlug                 string    `json:"event_slug"`
	EventDescription          string    `json:"event_description"`
	EventDate                 string    `json:"event_date"`
	EventTime                 *string   `json:"event_time,omitempty"`
	EventLocation             string    `json:"event_location"`
	EventVenueDetails         string    `json:"event_venue_details,omitempty"`
	EventType                 string    `json:"event_type"`
	EventRegistrationURL      string    `json:"event_registration_url,omitempty"`
	EventMaxParticipants      *int      `json:"event_max_participants,omitempty"`
	EventRegistrationDeadline *string   `json:"event_registration_deadline,omitempty"`
	EventIsFeatured           bool      `json:"event_is_featured"`
	EventStatus               string    `json:"event_status"`
	EventImageURL             string    `json:"event_image_url,omitempty"`
	EventCurrentParticipants  int       `json:"event_current_participants"`
	EventCreatedAt            string    `json:"event_created_at"`
	EventUpdatedAt            string    `json:"event_updated_at"`
}

type EventRegistrationResponse struct {
	EventRegistrationID           uuid.UUID `json:"event_registration_id"`
	EventRegistrationEventID      uuid.UUID `json:"event_registration_event_id"`
	EventRegistrationMemberName   string    `json:"event_registration_member_name"`
	EventRegistrationMemberEmail  string    `json:"event_registration_member_email"`
	EventRegistrationPhone        string    `json:"event_registration_phone,omitempty"`
	EventRegistrationOrganization string    `json:"event_registration_organization,omitempty"`
	EventRegistrationStatus       string    `json:"event_registration_status"`
	EventRegistrationCreatedAt    string    `json:"event_registration_created_at"`
}

//
// ========= Helpers & Converters =========
//

// 🔄 Request → Model (Create)
func (r *CreateEventRequest) ToModel() (*model.EventModel, error) {
	date, err := time.Parse(dateFmt, r.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event_date %q: %w", r.EventDate, err)
	}
	var deadline *time.Time
	if r.EventRegistrationDeadline != nil && strings.TrimSpace(*r.EventRegistrationDeadline) != "" {
		d, err := time.Parse(dtFmt, *r.EventRegistrationDeadline)
		if err != nil {
			return nil, fmt.Errorf("invalid event_registration_deadline %q: %w", *r.EventRegistrationDeadline, err)
		}
		deadline = &d
	}

	slug := r.EventSlug
	if strings.TrimSpace(slug) == "" {
		slug = helper.GenerateSlug(r.EventTitle)
	}
	eventType := strings.TrimSpace(r.EventType)
	if eventType == "" {
		eventType = model.EventTypeGeneral
	}

	return &model.EventModel{
		EventTitle:                r.EventTitle,
		EventSlug:                 slug,
		EventDescription:          r.EventDescription,
		EventDate:                 date,
		EventTime:                 r.EventTime,
		EventLocation:             r.EventLocation,
		EventVenueDetails:         r.EventVenueDetails,
		EventType:                 eventType,
		EventRegistrationURL:      r.EventRegistrationURL,
		EventMaxParticipants:      r.EventMaxParticipants,
		EventRegistrationDeadline: deadline,
		EventIsFeatured:           r.EventIsFeatured,
		EventStatus:               model.EventStatusUpcoming,
		EventCurrentParticipants:  0,
	}, nil
}

// 🔧 Apply PATCH to model (partial update)
func (r *UpdateEventRequest) ApplyToModel(m *model.EventModel) error {
	if r.EventTitle != nil {
		m.EventTitle = *r.EventTitle
		if r.EventSlug == nil {
			m.EventSlug = helper.GenerateSlug(*r.EventTitle)
		}
	}
	if r.EventSlug != nil {
		m.EventSlug = strings.TrimSpace(*r.EventSlug)
	}
	if r.EventDescription != nil {
		m.EventDescription = *r.EventDescription
	}
	if r.EventDate != nil {
		date, err := time.Parse(dateFmt, *r.EventDate)
		if err != nil {
			return fmt.Errorf("invalid event_date %q: %w", *r.EventDate, err)
		}
		m.EventDate = date
	}
	if r.EventTime != nil {
		m.EventTime = r.EventTime
	}
	if r.EventLocation != nil {
		m.EventLocation = *r.EventLocation
	}
	if r.EventVenueDetails != nil {
		m.EventVenueDetails = *r.EventVenueDetails
	}
	if r.EventType != nil {
		m.EventType = *r.EventType
	}
	if r.EventRegistrationURL != nil {
		m.EventRegistrationURL = *r.EventRegistrationURL
	}
	if r.EventMaxParticipants != nil {
		m.EventMaxParticipants = r.EventMaxParticipants
	}
	if r.EventRegistrationDeadline != nil {
		if strings.TrimSpace(*r.EventRegistrationDeadline) == "" {
			m.EventRegistrationDeadline = nil
		} else {
			d, err := time.Parse(dtFmt, *r.EventRegistrationDeadline)
			if err != nil {
				return fmt.Errorf("invalid event_registration_deadline %q: %w", *r.EventRegistrationDeadline, err)
			}
			m.EventRegistrationDeadline = &d
		}
	}
	if r.EventIsFeatured != nil {
		m.EventIsFeatured = *r.EventIsFeatured
	}
	return nil
}

// 🔄 Registration request → model
func (r *RegisterMemberRequest) ToModel(eventID uuid.UUID) *model.EventRegistrationModel {
	return &model.EventRegistrationModel{
		EventRegistrationEventID:      eventID,
		EventRegistrationMemberName:   strings.TrimSpace(r.MemberName),
		EventRegistrationMemberEmail:  strings.TrimSpace(r.MemberEmail),
		EventRegistrationPhone:        strings.TrimSpace(r.Phone),
		EventRegistrationOrganization: strings.TrimSpace(r.Organization),
		EventRegistrationStatus:       model.EventRegistrationStatusConfirmed,
	}
}

// 🔄 Model → Response
func ToEventResponse(m *model.EventModel) *EventResponse {
	var deadline *string
	if m.EventRegistrationDeadline != nil {
		s := m.EventRegistrationDeadline.Format(dtFmt)
		deadline = &s
	}
	return &EventResponse{
		EventID:                   m.EventID,
		EventTitle:                m.EventTitle,
		EventSlug:                 m.EventSlug,
		EventDescription:          m.EventDescription,
		EventDate:                 m.EventDate.Format(dateFmt),
		EventTime:                 m.EventTime,
		EventLocation:             m.EventLocation,
		EventVenueDetails:         m.EventVenueDetails,
		EventType:                 m.EventType,
		EventRegistrationURL:      m.EventRegistrationURL,
		EventMaxParticipants:      m.EventMaxParticipants,
		EventRegistrationDeadline: deadline,
		EventIsFeatured:           m.EventIsFeatured,
		EventStatus:               m.EventStatus,
		EventImageURL:             m.EventImageURL,
		EventCurrentParticipants:  m.EventCurrentParticipants,
		EventCreatedAt:            m.EventCreatedAt.Format(dtFmt),
		EventUpdatedAt:            m.EventUpdatedAt.Format(dtFmt),
	}
}

// 🔄 List Model → List Response
func ToEventResponseList(models []model.EventModel) []EventResponse {
	out := make([]EventResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToEventResponse(&models[i]))
	}
	return out
}

func ToEventRegistrationResponse(m *model.EventRegistrationModel) *EventRegistrationResponse {
	return &EventRegistrationResponse{
		EventRegistrationID:           m.EventRegistrationID,
		EventRegistrationEventID:      m.EventRegistrationEventID,
		EventRegistrationMemberName:   m.EventRegistrationMemberName,
		EventRegistrationMemberEmail:  m.EventRegistrationMemberEmail,
		EventRegistrationPhone:        m.EventRegistrationPhone,
		EventRegistrationOrganization: m.EventRegistrationOrganization,
		EventRegistrationStatus:       m.EventRegistrationStatus,
		EventRegistrationCreatedAt:    m.EventRegistrationCreatedAt.Format(dtFmt),
	}
}

func ToEventRegistrationResponseList(models []model.EventRegistrationModel) []EventRegistrationResponse {
	out := make([]EventRegistrationResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToEventRegistrationResponse(&models[i]))
	}
	return out
}
