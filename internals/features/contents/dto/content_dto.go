package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"chapterhub_backend/internals/features/contents/model"
	helper "chapterhub_backend/internals/helpers"
)

const dtFmt = "2006-01-02 15:04:05"

//
// ========= Request DTO =========
//

type CreateContentRequest struct {
	ContentType        string         `json:"content_type" form:"content_type" validate:"required"`
	ContentTitle       string         `json:"content_title" form:"content_title" validate:"required,max=255"`
	ContentSlug        string         `json:"content_slug" form:"content_slug"`
	ContentDescription string         `json:"content_description" form:"content_description"`
	ContentBody        string         `json:"content_body" form:"content_body"`
	ContentAuthor      string         `json:"content_author" form:"content_author" validate:"omitempty,max=255"`
	ContentTags        []string       `json:"content_tags" form:"content_tags"`
	ContentIsFeatured  bool           `json:"content_is_featured" form:"content_is_featured"`
	ContentMetadata    datatypes.JSON `json:"content_metadata"`
}

// Partial PATCH — pointer fields, nil means untouched.
type UpdateContentRequest struct {
	ContentTitle       *string        `json:"content_title" form:"content_title" validate:"omitempty,max=255"`
	ContentSlug        *string        `json:"content_slug" form:"content_slug"`
	ContentDescription *string        `json:"content_description" form:"content_description"`
	ContentBody        *string        `json:"content_body" form:"content_body"`
	ContentAuthor      *string        `json:"content_author" form:"content_author" validate:"omitempty,max=255"`
	ContentTags        *[]string      `json:"content_tags" form:"content_tags"`
	ContentIsFeatured  *bool          `json:"content_is_featured" form:"content_is_featured"`
	ContentMetadata    datatypes.JSON `json:"content_metadata"`
}

type UpdateContentStatusRequest struct {
	ContentStatus string `json:"content_status" validate:"required"`
}

//
// ========= Response DTO =========
//

type ContentResponse struct {
	ContentID          uuid.UUID      `json:"content_id"`
	ContentType        string         `json:"content_type"`
	ContentTitle       string         `json:"content_title"`
	ContentSlug        string         `json:"content_slug"`
	ContentDescription string         `json:"content_description"`
	ContentBody        string         `json:"content_body,omitempty"`
	ContentAuthor      string         `json:"content_author,omitempty"`
	ContentTags        []string       `json:"content_tags"`
	ContentStatus      string         `json:"content_status"`
	ContentIsFeatured  bool           `json:"content_is_featured"`
	ContentImageURL    string         `json:"content_image_url,omitempty"`
	ContentFileURL     string         `json:"content_file_url,omitempty"`
	ContentMetadata    datatypes.JSON `json:"content_metadata,omitempty"`
	ContentCreatedAt   string         `json:"content_created_at"`
	ContentUpdatedAt   string         `json:"content_updated_at"`
}

//
// ========= Helpers & Converters =========
//

// 🔄 Request → Model (Create)
func (r *CreateContentRequest) ToModel() *model.ContentModel {
	slug := r.ContentSlug
	if strings.TrimSpace(slug) == "" {
		slug = helper.GenerateSlug(r.ContentTitle)
	}
	return &model.ContentModel{
		ContentType:        r.ContentType,
		ContentTitle:       r.ContentTitle,
		ContentSlug:        slug,
		ContentDescription: r.ContentDescription,
		ContentBody:        r.ContentBody,
		ContentAuthor:      r.ContentAuthor,
		ContentTags:        pq.StringArray(r.ContentTags),
		ContentStatus:      model.ContentStatusDraft,
		ContentIsFeatured:  r.ContentIsFeatured,
		ContentMetadata:    r.ContentMetadata,
	}
}

// 🔧 Apply PATCH to model
func (r *UpdateContentRequest) ApplyToModel(m *model.ContentModel) {
	if r.ContentTitle != nil {
		m.ContentTitle = *r.ContentTitle
		if r.ContentSlug == nil {
			m.ContentSlug = helper.GenerateSlug(*r.ContentTitle)
		}
	}
	if r.ContentSlug != nil {
		m.ContentSlug = strings.TrimSpace(*r.ContentSlug)
	}
	if r.ContentDescription != nil {
		m.ContentDescription = *r.ContentDescription
	}
	if r.ContentBody != nil {
		m.ContentBody = *r.ContentBody
	}
	if r.ContentAuthor != nil {
		m.ContentAuthor = *r.ContentAuthor
	}
	if r.ContentTags != nil {
		m.ContentTags = pq.StringArray(*r.ContentTags)
	}
	if r.ContentIsFeatured != nil {
		m.ContentIsFeatured = *r.ContentIsFeatured
	}
	if len(r.ContentMetadata) > 0 {
		m.ContentMetadata = r.ContentMetadata
	}
}

// 🔄 Model → Response
func ToContentResponse(m *model.ContentModel) *ContentResponse {
	return &ContentResponse{
		ContentID:          m.ContentID,
		ContentType:        m.ContentType,
		ContentTitle:       m.ContentTitle,
		ContentSlug:        m.ContentSlug,
		ContentDescription: m.ContentDescription,
		ContentBody:        m.ContentBody,
		ContentAuthor:      m.ContentAuthor,
		ContentTags:        []string(m.ContentTags),
		ContentStatus:      m.ContentStatus,
		ContentIsFeatured:  m.ContentIsFeatured,
		ContentImageURL:    m.ContentImageURL,
		ContentFileURL:     m.ContentFileURL,
		ContentMetadata:    m.ContentMetadata,
		ContentCreatedAt:   m.ContentCreatedAt.Format(dtFmt),
		ContentUpdatedAt:   m.ContentUpdatedAt.Format(dtFmt),
	}
}

func ToContentResponseList(models []model.ContentModel) []ContentResponse {
	out := make([]ContentResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToContentResponse(&models[i]))
	}
	return out
}
