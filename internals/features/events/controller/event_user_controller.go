package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chapterhub_backend/internals/features/events/dto"
	"chapterhub_backend/internals/features/events/service"
	helper "chapterhub_backend/internals/helpers"
)

var validateEvent = validator.New()

// EventUserController serves the public catalog: browsing, detail pages,
// and member registration.
type EventUserController struct {
	Service *service.EventService
}

func NewEventUserController(svc *service.EventService) *EventUserController {
	return &EventUserController{Service: svc}
}

// 🟢 GET /api/u/events
func (ctrl *EventUserController) ListEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	opts := service.ListOptions{
		Page:      paging.Page,
		Limit:     paging.PerPage,
		Status:    c.Query("status"),
		EventType: c.Query("type"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by", "event_date"),
		SortOrder: c.Query("order", "asc"),
	}

	events, pagination, err := ctrl.Service.List(opts)
	if err != nil {
		log.Printf("[ERROR] list events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load events")
	}

	return helper.JsonList(c, "Events loaded", dto.ToEventDisplayResponseList(events), pagination)
}

// 🟢 GET /api/u/events/upcoming
func (ctrl *EventUserController) UpcomingEvents(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	events, err := ctrl.Service.Upcoming(limit)
	if err != nil {
		log.Printf("[ERROR] upcoming events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load upcoming events")
	}
	return helper.JsonOK(c, "Upcoming events loaded", dto.ToEventDisplayResponseList(events))
}

// 🟢 GET /api/u/events/past
func (ctrl *EventUserController) PastEvents(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	events, err := ctrl.Service.Past(limit)
	if err != nil {
		log.Printf("[ERROR] past events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load past events")
	}
	return helper.JsonOK(c, "Past events loaded", dto.ToEventDisplayResponseList(events))
}

// 🟢 GET /api/u/events/featured
func (ctrl *EventUserController) FeaturedEvents(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	events, err := ctrl.Service.Featured(limit)
	if err != nil {
		log.Printf("[ERROR] featured events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load featured events")
	}
	return helper.JsonOK(c, "Featured events loaded", dto.ToEventDisplayResponseList(events))
}

// 🟢 GET /api/u/events/id/:id
func (ctrl *EventUserController) GetEventByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	ev, err := ctrl.Service.GetByID(id)
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonOK(c, "Event found", dto.ToEventDisplayResponse(ev))
}

// 🟢 GET /api/u/events/:slug
func (ctrl *EventUserController) GetEventBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Slug must not be empty")
	}
	ev, err := ctrl.Service.GetBySlug(slug)
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonOK(c, "Event found", dto.ToEventDisplayResponse(ev))
}

// 🟢 POST /api/u/events/:id/register
func (ctrl *EventUserController) RegisterForEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var req dto.RegisterMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateEvent.Struct(&req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	reg, err := ctrl.Service.Register(c.UserContext(), id, &req)
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonCreated(c, "Registration confirmed", dto.ToEventRegistrationResponse(reg))
}

/* ===============================
   Shared error mapping
=================================*/

func mapEventError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	case errors.Is(err, service.ErrEventFull):
		return helper.JsonError(c, fiber.StatusConflict, "Event is already full")
	case errors.Is(err, service.ErrDeadlinePassed):
		return helper.JsonError(c, fiber.StatusConflict, "Registration deadline has passed")
	case errors.Is(err, service.ErrNegativeCount):
		return helper.JsonError(c, fiber.StatusBadRequest, "Participant count cannot be negative")
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidEventType),
		errors.Is(err, service.ErrValidation):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Not found")
	default:
		log.Printf("[ERROR] event operation: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func fieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}
