package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content statuses: soft classification instead of hard deletes.
const (
	ContentStatusDraft     = "draft"
	ContentStatusPublished = "published"
	ContentStatusArchived  = "archived"
)

// Content types. One table serves all four sections of the site.
const (
	ContentTypeNews        = "news"
	ContentTypePublication = "publication"
	ContentTypeResource    = "resource"
	ContentTypeBlog        = "blog"
)

var ContentStatuses = []string{
	ContentStatusDraft,
	ContentStatusPublished,
	ContentStatusArchived,
}

var ContentTypes = []string{
	ContentTypeNews,
	ContentTypePublication,
	ContentTypeResource,
	ContentTypeBlog,
}

func IsValidContentStatus(s string) bool {
	for _, v := range ContentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidContentType(s string) bool {
	for _, v := range ContentTypes {
		if v == s {
			return true
		}
	}
	return false
}

type ContentModel struct {
	ContentID          uuid.UUID      `gorm:"column:content_id;type:uuid;default:gen_random_uuid();primaryKey" json:"content_id"`
	ContentType        string         `gorm:"column:content_type;type:varchar(20);not null;index:idx_contents_type" json:"content_type"`
	ContentTitle       string         `gorm:"column:content_title;type:varchar(255);not null" json:"content_title"`
	ContentSlug        string         `gorm:"column:content_slug;type:varchar(100);not null" json:"content_slug"`
	ContentDescription string         `gorm:"column:content_description;type:text" json:"content_description"`
	ContentBody        string         `gorm:"column:content_body;type:text" json:"content_body"`
	ContentAuthor      string         `gorm:"column:content_author;type:varchar(255)" json:"content_author"`
	ContentTags        pq.StringArray `gorm:"column:content_tags;type:text[]" json:"content_tags"`
	ContentStatus      string         `gorm:"column:content_status;type:varchar(20);default:draft;index:idx_contents_status" json:"content_status"`
	ContentIsFeatured  bool           `gorm:"column:content_is_featured;default:false" json:"content_is_featured"`
	ContentImageURL    string         `gorm:"column:content_image_url;type:text" json:"content_image_url"`
	ContentFileURL     string         `gorm:"column:content_file_url;type:text" json:"content_file_url"`
	ContentMetadata    datatypes.JSON `gorm:"column:content_metadata;type:jsonb" json:"content_metadata"`
	ContentCreatedAt   time.Time      `gorm:"column:content_created_at;autoCreateTime" json:"content_created_at"`
	ContentUpdatedAt   time.Time      `gorm:"column:content_updated_at;autoUpdateTime" json:"content_updated_at"`
}

func (ContentModel) TableName() string {
	return "content_items"
}

func (m *ContentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContentID == uuid.Nil {
		m.ContentID = uuid.New()
	}
	return nil
}
