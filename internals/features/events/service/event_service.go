package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contentmodel "chapterhub_backend/internals/features/contents/model"
	"chapterhub_backend/internals/features/events/dto"
	"chapterhub_backend/internals/features/events/model"
	helper "chapterhub_backend/internals/helpers"
	helperOSS "chapterhub_backend/internals/helpers/oss"
)

// EventService owns all event queries and mutations. Controllers stay thin:
// parse, call, map errors to statuses.
type EventService struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService // nil disables poster handling (tests)
}

func NewEventService(db *gorm.DB, blob helperOSS.BlobService) *EventService {
	return &EventService{DB: db, Blob: blob}
}

/* ===============================
   Listing
=================================*/

type ListOptions struct {
	Page      int
	Limit     int
	Status    string
	EventType string
	Search    string
	SortBy    string // event_date | created_at | title
	SortOrder string // asc | desc
}

// column whitelist for ORDER BY
var eventSortColumns = map[string]string{
	"event_date": "event_date",
	"created_at": "event_created_at",
	"title":      "event_title",
}

// List applies the declarative filter/sort/pagination request.
// Search is an OR-combined case-insensitive substring match over title,
// description, and location; status/type filters are AND-combined.
func (s *EventService) List(opts ListOptions) ([]model.EventModel, helper.Pagination, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	q := s.DB.Model(&model.EventModel{})
	if opts.Status != "" {
		q = q.Where("event_status = ?", opts.Status)
	}
	if opts.EventType != "" {
		q = q.Where("event_type = ?", opts.EventType)
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		pat := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(event_title) LIKE ? OR LOWER(event_description) LIKE ? OR LOWER(event_location) LIKE ?",
			pat, pat, pat,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, helper.Pagination{}, fmt.Errorf("count events: %w", err)
	}

	col, ok := eventSortColumns[opts.SortBy]
	if !ok {
		col = "event_date"
	}
	dir := "ASC"
	if strings.EqualFold(opts.SortOrder, "desc") {
		dir = "DESC"
	}

	var events []model.EventModel
	if err := q.
		Order(col + " " + dir).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&events).Error; err != nil {
		return nil, helper.Pagination{}, fmt.Errorf("list events: %w", err)
	}

	return events, helper.BuildPaginationFromPage(total, page, limit), nil
}

// Upcoming: event date today or later, status upcoming/ongoing, soonest first.
func (s *EventService) Upcoming(limit int) ([]model.EventModel, error) {
	return s.datedSlice(
		s.DB.Where("event_date >= ?", startOfToday()).
			Where("event_status IN ?", []string{model.EventStatusUpcoming, model.EventStatusOngoing}),
		"event_date ASC", limit)
}

// Past: event date before today, completed only, most recent first.
func (s *EventService) Past(limit int) ([]model.EventModel, error) {
	return s.datedSlice(
		s.DB.Where("event_date < ?", startOfToday()).
			Where("event_status = ?", model.EventStatusCompleted),
		"event_date DESC", limit)
}

// Featured: flagged events still upcoming/ongoing, soonest first.
func (s *EventService) Featured(limit int) ([]model.EventModel, error) {
	return s.datedSlice(
		s.DB.Where("event_is_featured = ?", true).
			Where("event_status IN ?", []string{model.EventStatusUpcoming, model.EventStatusOngoing}),
		"event_date ASC", limit)
}

func (s *EventService) datedSlice(q *gorm.DB, order string, limit int) ([]model.EventModel, error) {
	if limit < 1 {
		limit = 10
	}
	var events []model.EventModel
	if err := q.Order(order).Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

/* ===============================
   Reads
=================================*/

func (s *EventService) GetByID(id uuid.UUID) (*model.EventModel, error) {
	var ev model.EventModel
	if err := s.DB.Where("event_id = ?", id).First(&ev).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (s *EventService) GetBySlug(slug string) (*model.EventModel, error) {
	var ev model.EventModel
	if err := s.DB.Where("event_slug = ?", slug).First(&ev).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

/* ===============================
   Mutations
=================================*/

// Create validates the required fields, uploads the poster first (a failed
// upload aborts the whole create), and inserts the row with the counter at 0.
func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest, poster *multipart.FileHeader) (*model.EventModel, error) {
	if strings.TrimSpace(req.EventTitle) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.EventDate) == "" {
		return nil, fmt.Errorf("%w: event date is required", ErrValidation)
	}
	if strings.TrimSpace(req.EventLocation) == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if req.EventType != "" && !model.IsValidEventType(req.EventType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, req.EventType)
	}
	if req.EventMaxParticipants != nil && *req.EventMaxParticipants < 0 {
		return nil, fmt.Errorf("%w: max participants cannot be negative", ErrValidation)
	}

	ev, err := req.ToModel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if poster != nil {
		if s.Blob == nil {
			return nil, fmt.Errorf("poster upload unavailable")
		}
		url, err := s.Blob.UploadImage(ctx, "events/posters", poster)
		if err != nil {
			return nil, fmt.Errorf("upload poster: %w", err)
		}
		ev.EventImageURL = url
	}

	if err := s.DB.Create(ev).Error; err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return ev, nil
}

// Update applies a partial patch. A replacement poster best-effort deletes
// the previous blob first; that delete failing does not block the update.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest, poster *multipart.FileHeader) (*model.EventModel, error) {
	ev, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.EventType != nil && *req.EventType != "" && !model.IsValidEventType(*req.EventType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, *req.EventType)
	}
	if req.EventMaxParticipants != nil && *req.EventMaxParticipants < 0 {
		return nil, fmt.Errorf("%w: max participants cannot be negative", ErrValidation)
	}

	if poster != nil {
		if s.Blob == nil {
			return nil, fmt.Errorf("poster upload unavailable")
		}
		if ev.EventImageURL != "" {
			if err := s.Blob.DeleteByPublicURL(ctx, ev.EventImageURL); err != nil {
				log.Printf("[WARN] delete old poster for event %s: %v", id, err)
			}
		}
		url, err := s.Blob.UploadImage(ctx, "events/posters", poster)
		if err != nil {
			return nil, fmt.Errorf("upload poster: %w", err)
		}
		ev.EventImageURL = url
	}

	if err := req.ApplyToModel(ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	ev.EventUpdatedAt = time.Now()

	if err := s.DB.Save(ev).Error; err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return ev, nil
}

// UpdateStatus writes any valid status. There is no transition graph:
// admins may move an event between any two statuses.
func (s *EventService) UpdateStatus(id uuid.UUID, status string) (*model.EventModel, error) {
	if !model.IsValidEventStatus(status) {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrInvalidStatus, status, model.EventStatuses)
	}
	res := s.DB.Model(&model.EventModel{}).
		Where("event_id = ?", id).
		Updates(map[string]interface{}{
			"event_status":     status,
			"event_updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEventNotFound
	}
	return s.GetByID(id)
}

// ToggleFeatured flips the flag in a single atomic statement, so two
// concurrent toggles net to two real flips instead of a lost update.
func (s *EventService) ToggleFeatured(id uuid.UUID) (*model.EventModel, error) {
	res := s.DB.Model(&model.EventModel{}).
		Where("event_id = ?", id).
		UpdateColumn("event_is_featured", gorm.Expr("NOT event_is_featured"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEventNotFound
	}
	return s.GetByID(id)
}

// Delete removes the row after a best-effort poster cleanup. A failed blob
// delete is logged and does not block the row delete; the reverse partial
// failure (blob gone, row delete fails) is also tolerated.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	ev, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if ev.EventImageURL != "" && s.Blob != nil {
		if err := s.Blob.DeleteByPublicURL(ctx, ev.EventImageURL); err != nil {
			log.Printf("[WARN] delete poster for event %s: %v", id, err)
		}
	}
	if err := s.DB.Delete(&model.EventModel{}, "event_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

/* ===============================
   Registration
=================================*/

// Register inserts a registration row and bumps the participant counter in
// one transaction. Capacity is enforced twice: a pre-check for a friendly
// error, and a guard predicate on the increment itself so concurrent
// registrations cannot race past the limit.
func (s *EventService) Register(ctx context.Context, eventID uuid.UUID, req *dto.RegisterMemberRequest) (*model.EventRegistrationModel, error) {
	if strings.TrimSpace(req.MemberName) == "" {
		return nil, fmt.Errorf("%w: member name is required", ErrValidation)
	}
	if strings.TrimSpace(req.MemberEmail) == "" {
		return nil, fmt.Errorf("%w: member email is required", ErrValidation)
	}

	ev, err := s.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if ev.EventMaxParticipants != nil && ev.EventCurrentParticipants >= *ev.EventMaxParticipants {
		return nil, ErrEventFull
	}
	if !time.Now().Before(ev.EffectiveDeadline()) {
		return nil, ErrDeadlinePassed
	}

	reg := req.ToModel(eventID)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.EventModel{}).
			Where("event_id = ? AND (event_max_participants IS NULL OR event_current_participants < event_max_participants)", eventID).
			UpdateColumn("event_current_participants", gorm.Expr("event_current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The guard lost to a concurrent registration.
			return ErrEventFull
		}
		return tx.Create(reg).Error
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// RegistrationsForEvent lists an event's registrations, newest first.
func (s *EventService) RegistrationsForEvent(eventID uuid.UUID, p helper.Paging) ([]model.EventRegistrationModel, helper.Pagination, error) {
	if _, err := s.GetByID(eventID); err != nil {
		return nil, helper.Pagination{}, err
	}

	var total int64
	if err := s.DB.Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ?", eventID).
		Count(&total).Error; err != nil {
		return nil, helper.Pagination{}, err
	}

	var regs []model.EventRegistrationModel
	if err := s.DB.
		Where("event_registration_event_id = ?", eventID).
		Order("event_registration_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&regs).Error; err != nil {
		return nil, helper.Pagination{}, err
	}

	return regs, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

/* ===============================
   Participant counter
=================================*/

// IncrementParticipantCount bumps the counter atomically, honoring the
// capacity guard.
func (s *EventService) IncrementParticipantCount(id uuid.UUID) error {
	res := s.DB.Model(&model.EventModel{}).
		Where("event_id = ? AND (event_max_participants IS NULL OR event_current_participants < event_max_participants)", id).
		UpdateColumn("event_current_participants", gorm.Expr("event_current_participants + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetByID(id); err != nil {
			return err
		}
		return ErrEventFull
	}
	return nil
}

// DecrementParticipantCount lowers the counter atomically, floored at zero.
func (s *EventService) DecrementParticipantCount(id uuid.UUID) error {
	res := s.DB.Model(&model.EventModel{}).
		Where("event_id = ? AND event_current_participants > 0", id).
		UpdateColumn("event_current_participants", gorm.Expr("event_current_participants - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetByID(id); err != nil {
			return err
		}
		// already at zero: nothing to do
	}
	return nil
}

// UpdateParticipantCount is the administrative override: it writes the
// literal value and deliberately bypasses the registrations table, so
// walk-ins can be accounted for.
func (s *EventService) UpdateParticipantCount(id uuid.UUID, count int) (*model.EventModel, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	res := s.DB.Model(&model.EventModel{}).
		Where("event_id = ?", id).
		Updates(map[string]interface{}{
			"event_current_participants": count,
			"event_updated_at":           time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEventNotFound
	}
	return s.GetByID(id)
}

/* ===============================
   Dashboard
=================================*/

type DashboardStats struct {
	TotalEvents        int64            `json:"total_events"`
	EventsByStatus     map[string]int64 `json:"events_by_status"`
	TotalRegistrations int64            `json:"total_registrations"`
	TotalContents      int64            `json:"total_contents"`
	ContentsByStatus   map[string]int64 `json:"contents_by_status"`
}

type statusRow struct {
	Status string
	N      int64
}

// Stats feeds the admin dashboard counters, content items included.
func (s *EventService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{
		EventsByStatus:   map[string]int64{},
		ContentsByStatus: map[string]int64{},
	}

	if err := s.DB.Model(&model.EventModel{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	var rows []statusRow
	if err := s.DB.Model(&model.EventModel{}).
		Select("event_status AS status, COUNT(*) AS n").
		Group("event_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.EventsByStatus[r.Status] = r.N
	}

	if err := s.DB.Model(&model.EventRegistrationModel{}).Count(&stats.TotalRegistrations).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&contentmodel.ContentModel{}).Count(&stats.TotalContents).Error; err != nil {
		return nil, err
	}
	rows = rows[:0]
	if err := s.DB.Model(&contentmodel.ContentModel{}).
		Select("content_status AS status, COUNT(*) AS n").
		Group("content_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.ContentsByStatus[r.Status] = r.N
	}
	return stats, nil
}
