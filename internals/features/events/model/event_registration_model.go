package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const EventRegistrationStatusConfirmed = "confirmed"

type EventRegistrationModel struct {
	EventRegistrationID           uuid.UUID `gorm:"column:event_registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_registration_id"`
	EventRegistrationEventID      uuid.UUID `gorm:"column:event_registration_event_id;type:uuid;not null;index:idx_event_registrations_event_id" json:"event_registration_event_id"`
	EventRegistrationMemberName   string    `gorm:"column:event_registration_member_name;type:varchar(255);not null" json:"event_registration_member_name"`
	EventRegistrationMemberEmail  string    `gorm:"column:event_registration_member_email;type:varchar(255);not null" json:"event_registration_member_email"`
	EventRegistrationPhone        string    `gorm:"column:event_registration_phone;type:varchar(30)" json:"event_registration_phone"`
	EventRegistrationOrganization string    `gorm:"column:event_registration_organization;type:varchar(255)" json:"event_registration_organization"`
	EventRegistrationStatus       string    `gorm:"column:event_registration_status;type:varchar(20);default:confirmed" json:"event_registration_status"`
	EventRegistrationCreatedAt    time.Time `gorm:"column:event_registration_created_at;autoCreateTime" json:"event_registration_created_at"`
}

func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}

func (m *EventRegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventRegistrationID == uuid.Nil {
		m.EventRegistrationID = uuid.New()
	}
	return nil
}
