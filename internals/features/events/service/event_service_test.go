package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	contentmodel "chapterhub_backend/internals/features/contents/model"
	"chapterhub_backend/internals/features/events/dto"
	"chapterhub_backend/internals/features/events/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// single connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.EventModel{}, &model.EventRegistrationModel{}, &contentmodel.ContentModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEvent(t *testing.T, svc *EventService, mutate func(*dto.CreateEventRequest)) *model.EventModel {
	t.Helper()
	req := dto.CreateEventRequest{
		EventTitle:    "Monthly Colloquium",
		EventDate:     time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		EventLocation: "Main Hall",
	}
	if mutate != nil {
		mutate(&req)
	}
	ev, err := svc.Create(context.Background(), &req, nil)
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return ev
}

func intPtr(n int) *int { return &n }

func TestCreateDefaultsAndRoundTrip(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)

	created, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		EventTitle:    "T",
		EventDate:     "2025-06-01",
		EventLocation: "L",
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(created.EventID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.EventCurrentParticipants != 0 {
		t.Errorf("current participants = %d, want 0", got.EventCurrentParticipants)
	}
	if got.EventStatus != model.EventStatusUpcoming {
		t.Errorf("status = %q, want %q", got.EventStatus, model.EventStatusUpcoming)
	}
	if got.EventTitle != "T" || got.EventLocation != "L" {
		t.Errorf("title/location = %q/%q, want T/L", got.EventTitle, got.EventLocation)
	}
	if got.EventDate.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("date = %s, want 2025-06-01", got.EventDate.Format("2006-01-02"))
	}
	if got.EventSlug != "t" {
		t.Errorf("slug = %q, want %q", got.EventSlug, "t")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)

	cases := []struct {
		name string
		req  dto.CreateEventRequest
	}{
		{"missing title", dto.CreateEventRequest{EventDate: "2025-06-01", EventLocation: "L"}},
		{"missing date", dto.CreateEventRequest{EventTitle: "T", EventLocation: "L"}},
		{"missing location", dto.CreateEventRequest{EventTitle: "T", EventDate: "2025-06-01"}},
		{"bad event type", dto.CreateEventRequest{EventTitle: "T", EventDate: "2025-06-01", EventLocation: "L", EventType: "gala"}},
		{"negative capacity", dto.CreateEventRequest{EventTitle: "T", EventDate: "2025-06-01", EventLocation: "L", EventMaxParticipants: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), &tc.req, nil); err == nil {
				t.Fatal("expected a validation error, got nil")
			}
		})
	}

	var n int64
	svc.DB.Model(&model.EventModel{}).Count(&n)
	if n != 0 {
		t.Errorf("events in table = %d, want 0 after failed creates", n)
	}
}

func TestListPagination(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	for i := 0; i < 25; i++ {
		seedEvent(t, svc, func(r *dto.CreateEventRequest) {
			r.EventTitle = fmt.Sprintf("Event %02d", i)
			r.EventSlug = fmt.Sprintf("event-%02d", i)
			r.EventDate = time.Now().AddDate(0, 0, i+1).Format("2006-01-02")
		})
	}

	events, p, err := svc.List(ListOptions{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 5 {
		t.Errorf("page 3 length = %d, want 5", len(events))
	}
	if p.Total != 25 || p.TotalPages != 3 {
		t.Errorf("total/totalPages = %d/%d, want 25/3", p.Total, p.TotalPages)
	}
	if p.HasNext {
		t.Error("page 3 of 3 must not have next")
	}
	if !p.HasPrev {
		t.Error("page 3 of 3 must have prev")
	}

	_, p2, err := svc.List(ListOptions{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if !p2.HasNext || p2.HasPrev {
		t.Errorf("page 1: has_next=%v has_prev=%v, want true/false", p2.HasNext, p2.HasPrev)
	}
}

func TestListFiltersAndSearch(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventTitle = "Robotics Workshop"
		r.EventType = model.EventTypeWorkshop
	})
	seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventTitle = "Annual Conference"
		r.EventSlug = "annual-conference"
		r.EventType = model.EventTypeConference
		r.EventLocation = "Convention Center"
	})
	seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventTitle = "Guest Lecture"
		r.EventSlug = "guest-lecture"
		r.EventType = model.EventTypeLecture
		r.EventDescription = "A robotics deep dive"
	})

	// case-insensitive substring over title, description, location
	events, _, err := svc.List(ListOptions{Search: "ROBOTICS"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("search hits = %d, want 2 (title + description match)", len(events))
	}

	events, _, err = svc.List(ListOptions{Search: "convention"})
	if err != nil {
		t.Fatalf("search location: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("location search hits = %d, want 1", len(events))
	}

	events, _, err = svc.List(ListOptions{EventType: model.EventTypeWorkshop})
	if err != nil {
		t.Fatalf("type filter: %v", err)
	}
	if len(events) != 1 || events[0].EventTitle != "Robotics Workshop" {
		t.Errorf("type filter returned %d events", len(events))
	}
}

func TestUpcomingPastFeatured(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)

	future := seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventTitle = "Future"
		r.EventIsFeatured = true
	})
	past := seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventTitle = "Past"
		r.EventSlug = "past"
		r.EventDate = time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	})
	if _, err := svc.UpdateStatus(past.EventID, model.EventStatusCompleted); err != nil {
		t.Fatalf("complete past event: %v", err)
	}

	up, err := svc.Upcoming(10)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(up) != 1 || up[0].EventID != future.EventID {
		t.Errorf("upcoming = %d events, want just the future one", len(up))
	}

	pastList, err := svc.Past(10)
	if err != nil {
		t.Fatalf("past: %v", err)
	}
	if len(pastList) != 1 || pastList[0].EventID != past.EventID {
		t.Errorf("past = %d events, want just the completed one", len(pastList))
	}

	feat, err := svc.Featured(10)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(feat) != 1 || feat[0].EventID != future.EventID {
		t.Errorf("featured = %d events, want just the flagged upcoming one", len(feat))
	}
}

func TestRegisterCapacity(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ev := seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventMaxParticipants = intPtr(3)
	})

	successes, full := 0, 0
	for i := 0; i < 10; i++ {
		_, err := svc.Register(context.Background(), ev.EventID, &dto.RegisterMemberRequest{
			MemberName:  fmt.Sprintf("Member %d", i),
			MemberEmail: fmt.Sprintf("member%d@example.org", i),
		})
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrEventFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 3 || full != 7 {
		t.Errorf("successes/full = %d/%d, want 3/7", successes, full)
	}

	got, _ := svc.GetByID(ev.EventID)
	if got.EventCurrentParticipants != 3 {
		t.Errorf("counter = %d, want 3", got.EventCurrentParticipants)
	}

	var rows int64
	svc.DB.Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ?", ev.EventID).
		Count(&rows)
	if rows != 3 {
		t.Errorf("registration rows = %d, want 3", rows)
	}
}

func TestRegisterAtExactCapacityFails(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ev := seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventMaxParticipants = intPtr(1)
	})

	if _, err := svc.Register(context.Background(), ev.EventID, &dto.RegisterMemberRequest{
		MemberName: "A", MemberEmail: "a@example.org",
	}); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := svc.Register(context.Background(), ev.EventID, &dto.RegisterMemberRequest{
		MemberName: "B", MemberEmail: "b@example.org",
	})
	if !errors.Is(err, ErrEventFull) {
		t.Fatalf("err = %v, want ErrEventFull", err)
	}

	got, _ := svc.GetByID(ev.EventID)
	if got.EventCurrentParticipants != 1 {
		t.Errorf("counter = %d, want 1 (failed registration must not increment)", got.EventCurrentParticipants)
	}
	var rows int64
	svc.DB.Model(&model.EventRegistrationModel{}).Count(&rows)
	if rows != 1 {
		t.Errorf("registration rows = %d, want 1", rows)
	}
}

func TestRegisterDeadline(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)

	// explicit deadline in the past, event date still in the future
	pastDeadline := time.Now().Add(-time.Hour).Format("2006-01-02 15:04:05")
	ev := seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventRegistrationDeadline = &pastDeadline
	})
	_, err := svc.Register(context.Background(), ev.EventID, &dto.RegisterMemberRequest{
		MemberName: "A", MemberEmail: "a@example.org",
	})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("err = %v, want ErrDeadlinePassed", err)
	}

	// no deadline — the event date is the effective deadline
	ev2 := seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventSlug = "yesterday"
		r.EventDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	})
	_, err = svc.Register(context.Background(), ev2.EventID, &dto.RegisterMemberRequest{
		MemberName: "B", MemberEmail: "b@example.org",
	})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("err = %v, want ErrDeadlinePassed for event date fallback", err)
	}
}

func TestRegisterValidationAndNotFound(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ev := seedEvent(t, svc, nil)

	if _, err := svc.Register(context.Background(), ev.EventID, &dto.RegisterMemberRequest{MemberEmail: "a@example.org"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Register(context.Background(), ev.EventID, &dto.RegisterMemberRequest{MemberName: "A"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing email: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Register(context.Background(), uuid.New(), &dto.RegisterMemberRequest{MemberName: "A", MemberEmail: "a@example.org"}); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("unknown event: err = %v, want ErrEventNotFound", err)
	}
}

func TestParticipantCounter(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ev := seedEvent(t, svc, func(r *dto.CreateEventRequest) {
		r.EventMaxParticipants = intPtr(2)
	})

	if err := svc.IncrementParticipantCount(ev.EventID); err != nil {
		t.Fatalf("increment 1: %v", err)
	}
	if err := svc.IncrementParticipantCount(ev.EventID); err != nil {
		t.Fatalf("increment 2: %v", err)
	}
	if err := svc.IncrementParticipantCount(ev.EventID); !errors.Is(err, ErrEventFull) {
		t.Errorf("increment past capacity: err = %v, want ErrEventFull", err)
	}

	if err := svc.DecrementParticipantCount(ev.EventID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	got, _ := svc.GetByID(ev.EventID)
	if got.EventCurrentParticipants != 1 {
		t.Errorf("counter = %d, want 1", got.EventCurrentParticipants)
	}

	// floor at zero
	_ = svc.DecrementParticipantCount(ev.EventID)
	if err := svc.DecrementParticipantCount(ev.EventID); err != nil {
		t.Fatalf("decrement at zero: %v", err)
	}
	got, _ = svc.GetByID(ev.EventID)
	if got.EventCurrentParticipants != 0 {
		t.Errorf("counter = %d, want 0", got.EventCurrentParticipants)
	}
}

func TestUpdateParticipantCountOverride(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ev := seedEvent(t, svc, nil)

	if _, err := svc.UpdateParticipantCount(ev.EventID, -5); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("negative override: err = %v, want ErrNegativeCount", err)
	}
	got, _ := svc.GetByID(ev.EventID)
	if got.EventCurrentParticipants != 0 {
		t.Errorf("counter mutated by rejected override: %d", got.EventCurrentParticipants)
	}

	// walk-ins: the override bypasses the registrations table on purpose
	updated, err := svc.UpdateParticipantCount(ev.EventID, 42)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if updated.EventCurrentParticipants != 42 {
		t.Errorf("counter = %d, want 42", updated.EventCurrentParticipants)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ev := seedEvent(t, svc, nil)

	if _, err := svc.UpdateStatus(ev.EventID, "postponed"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("invalid status: err = %v, want ErrInvalidStatus", err)
	}

	// transitions are unrestricted: completed straight back to upcoming
	if _, err := svc.UpdateStatus(ev.EventID, model.EventStatusCompleted); err != nil {
		t.Fatalf("to completed: %v", err)
	}
	got, err := svc.UpdateStatus(ev.EventID, model.EventStatusUpcoming)
	if err != nil {
		t.Fatalf("back to upcoming: %v", err)
	}
	if got.EventStatus != model.EventStatusUpcoming {
		t.Errorf("status = %q, want upcoming", got.EventStatus)
	}

	if _, err := svc.UpdateStatus(uuid.New(), model.EventStatusCancelled); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("unknown event: err = %v, want ErrEventNotFound", err)
	}
}

func TestToggleFeaturedTwiceRestores(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ev := seedEvent(t, svc, nil)

	first, err := svc.ToggleFeatured(ev.EventID)
	if err != nil {
		t.Fatalf("toggle 1: %v", err)
	}
	if !first.EventIsFeatured {
		t.Error("first toggle should set the flag")
	}
	second, err := svc.ToggleFeatured(ev.EventID)
	if err != nil {
		t.Fatalf("toggle 2: %v", err)
	}
	if second.EventIsFeatured {
		t.Error("second toggle should clear the flag")
	}
}

/* ===============================
   Blob interactions
=================================*/

type fakeBlob struct {
	deleted   []string
	deleteErr error
}

func (f *fakeBlob) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	return "https://cdn.example.org/" + dir + "/fake.webp", nil
}

func (f *fakeBlob) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	return "https://cdn.example.org/" + dir + "/fake.bin", "application/octet-stream", nil
}

func (f *fakeBlob) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	f.deleted = append(f.deleted, publicURL)
	return f.deleteErr
}

func TestDeleteCleansUpPoster(t *testing.T) {
	blob := &fakeBlob{}
	svc := NewEventService(newTestDB(t), blob)
	ev := seedEvent(t, svc, nil)

	const posterURL = "https://cdn.example.org/uploads/events/posters/poster.webp"
	if err := svc.DB.Model(&model.EventModel{}).
		Where("event_id = ?", ev.EventID).
		Update("event_image_url", posterURL).Error; err != nil {
		t.Fatalf("set poster url: %v", err)
	}

	if err := svc.Delete(context.Background(), ev.EventID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(blob.deleted) != 1 || blob.deleted[0] != posterURL {
		t.Errorf("blob deletes = %v, want exactly one delete of the poster URL", blob.deleted)
	}
	if _, err := svc.GetByID(ev.EventID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("row still present after delete: err = %v", err)
	}
}

func TestDeleteSurvivesBlobFailure(t *testing.T) {
	blob := &fakeBlob{deleteErr: errors.New("storage down")}
	svc := NewEventService(newTestDB(t), blob)
	ev := seedEvent(t, svc, nil)

	if err := svc.DB.Model(&model.EventModel{}).
		Where("event_id = ?", ev.EventID).
		Update("event_image_url", "https://cdn.example.org/poster.webp").Error; err != nil {
		t.Fatalf("set poster url: %v", err)
	}

	if err := svc.Delete(context.Background(), ev.EventID); err != nil {
		t.Fatalf("delete must tolerate a failed blob delete: %v", err)
	}
	if len(blob.deleted) != 1 {
		t.Errorf("blob delete attempts = %d, want 1", len(blob.deleted))
	}
	if _, err := svc.GetByID(ev.EventID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("row must be gone even when the blob delete failed: err = %v", err)
	}
}

func TestStats(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	a := seedEvent(t, svc, nil)
	b := seedEvent(t, svc, func(r *dto.CreateEventRequest) { r.EventSlug = "b" })
	if _, err := svc.UpdateStatus(b.EventID, model.EventStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Register(context.Background(), a.EventID, &dto.RegisterMemberRequest{
		MemberName: "A", MemberEmail: "a@example.org",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEvents != 2 {
		t.Errorf("total events = %d, want 2", stats.TotalEvents)
	}
	if stats.EventsByStatus[model.EventStatusUpcoming] != 1 || stats.EventsByStatus[model.EventStatusCancelled] != 1 {
		t.Errorf("by status = %v", stats.EventsByStatus)
	}
	if stats.TotalRegistrations != 1 {
		t.Errorf("total registrations = %d, want 1", stats.TotalRegistrations)
	}

	if err := svc.DB.Create(&contentmodel.ContentModel{
		ContentType:   contentmodel.ContentTypeNews,
		ContentTitle:  "N",
		ContentSlug:   "n",
		ContentStatus: contentmodel.ContentStatusPublished,
	}).Error; err != nil {
		t.Fatalf("seed content: %v", err)
	}
	stats, err = svc.Stats()
	if err != nil {
		t.Fatalf("stats with content: %v", err)
	}
	if stats.TotalContents != 1 || stats.ContentsByStatus[contentmodel.ContentStatusPublished] != 1 {
		t.Errorf("content stats = %d / %v", stats.TotalContents, stats.ContentsByStatus)
	}
}
