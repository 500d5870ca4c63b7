package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"chapterhub_backend/internals/features/events/dto"
	"chapterhub_backend/internals/features/events/service"
	helper "chapterhub_backend/internals/helpers"
)

// EventAdminController is the back-office surface: full CRUD, status and
// feature toggles, counter override, registration lists, dashboard stats.
type EventAdminController struct {
	Service *service.EventService
}

func NewEventAdminController(svc *service.EventService) *EventAdminController {
	return &EventAdminController{Service: svc}
}

// posterFile fetches the optional "poster" multipart field.
func posterFile(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("poster")
	if err != nil {
		return nil
	}
	return fh
}

// 🟢 POST /api/a/events
func (ctrl *EventAdminController) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateEvent.Struct(&req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	ev, err := ctrl.Service.Create(c.UserContext(), &req, posterFile(c))
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonCreated(c, "Event created", dto.ToEventResponse(ev))
}

// 🟡 PATCH /api/a/events/:id
func (ctrl *EventAdminController) UpdateEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateEvent.Struct(&req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	ev, err := ctrl.Service.Update(c.UserContext(), id, &req, posterFile(c))
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonUpdated(c, "Event updated", dto.ToEventResponse(ev))
}

// 🟡 PATCH /api/a/events/:id/status
func (ctrl *EventAdminController) UpdateEventStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var req dto.UpdateEventStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	ev, err := ctrl.Service.UpdateStatus(id, req.EventStatus)
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonUpdated(c, "Event status updated", dto.ToEventResponse(ev))
}

// 🟡 PATCH /api/a/events/:id/featured
func (ctrl *EventAdminController) ToggleFeatured(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	ev, err := ctrl.Service.ToggleFeatured(id)
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonUpdated(c, "Event featured flag toggled", dto.ToEventResponse(ev))
}

// 🟡 PATCH /api/a/events/:id/participants
func (ctrl *EventAdminController) UpdateParticipantCount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var req dto.UpdateParticipantCountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	ev, err := ctrl.Service.UpdateParticipantCount(id, req.EventCurrentParticipants)
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonUpdated(c, "Participant count updated", dto.ToEventResponse(ev))
}

// 🔴 DELETE /api/a/events/:id
func (ctrl *EventAdminController) DeleteEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonDeleted(c, "Event deleted", nil)
}

// 🟢 GET /api/a/events/:id/registrations
func (ctrl *EventAdminController) ListRegistrations(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	paging := helper.ResolvePaging(c, 25, 200)
	regs, pagination, err := ctrl.Service.RegistrationsForEvent(id, paging)
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonList(c, "Registrations loaded", dto.ToEventRegistrationResponseList(regs), pagination)
}

// 🟢 GET /api/a/events/stats
func (ctrl *EventAdminController) DashboardStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.Stats()
	if err != nil {
		return mapEventError(c, err)
	}
	return helper.JsonOK(c, "Dashboard stats loaded", stats)
}
