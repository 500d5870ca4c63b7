package dto

import (
	"reflect"
	"testing"

	"github.com/lib/pq"

	"chapterhub_backend/internals/features/contents/model"
)

func sPtr(s string) *string { return &s }

func TestCreateContentToModel(t *testing.T) {
	req := CreateContentRequest{
		ContentType:  model.ContentTypeNews,
		ContentTitle: "Chapter Wins Regional Award",
		ContentTags:  []string{"awards", "chapter"},
	}
	m := req.ToModel()

	if m.ContentSlug != "chapter-wins-regional-award" {
		t.Errorf("slug = %q", m.ContentSlug)
	}
	if m.ContentStatus != model.ContentStatusDraft {
		t.Errorf("status = %q, want draft on create", m.ContentStatus)
	}
	if len(m.ContentTags) != 2 {
		t.Errorf("tags = %v", m.ContentTags)
	}
}

func TestCreateContentExplicitSlugWins(t *testing.T) {
	req := CreateContentRequest{
		ContentType:  model.ContentTypeBlog,
		ContentTitle: "Some Long Title",
		ContentSlug:  "short",
	}
	if m := req.ToModel(); m.ContentSlug != "short" {
		t.Errorf("slug = %q, want the explicit one", m.ContentSlug)
	}
}

func TestUpdateContentApplyToModel(t *testing.T) {
	m := model.ContentModel{
		ContentTitle:       "Old Title",
		ContentSlug:        "old-title",
		ContentDescription: "old description",
		ContentBody:        "old body",
		ContentStatus:      model.ContentStatusPublished,
		ContentTags:        pq.StringArray{"one"},
	}

	// nil fields leave the model alone
	(&UpdateContentRequest{}).ApplyToModel(&m)
	if m.ContentTitle != "Old Title" || m.ContentBody != "old body" {
		t.Fatal("empty patch must not mutate the model")
	}

	// title patch regenerates the slug when no slug is sent
	(&UpdateContentRequest{ContentTitle: sPtr("New Title")}).ApplyToModel(&m)
	if m.ContentSlug != "new-title" {
		t.Errorf("slug = %q, want regenerated from the new title", m.ContentSlug)
	}

	// an explicit slug in the same patch wins over regeneration
	(&UpdateContentRequest{
		ContentTitle: sPtr("Another Title"),
		ContentSlug:  sPtr("kept-slug"),
	}).ApplyToModel(&m)
	if m.ContentSlug != "kept-slug" {
		t.Errorf("slug = %q, want the explicit one", m.ContentSlug)
	}

	// tags replace wholesale, including clearing with an empty slice
	empty := []string{}
	(&UpdateContentRequest{ContentTags: &empty}).ApplyToModel(&m)
	if len(m.ContentTags) != 0 {
		t.Errorf("tags = %v, want cleared", m.ContentTags)
	}

	// status is never touched by the general patch
	if m.ContentStatus != model.ContentStatusPublished {
		t.Errorf("status = %q, patch must not change it", m.ContentStatus)
	}
}

func TestToContentResponseTags(t *testing.T) {
	m := model.ContentModel{
		ContentTitle: "T",
		ContentTags:  pq.StringArray{"a", "b"},
	}
	resp := ToContentResponse(&m)
	if !reflect.DeepEqual(resp.ContentTags, []string{"a", "b"}) {
		t.Errorf("tags = %v", resp.ContentTags)
	}
}
