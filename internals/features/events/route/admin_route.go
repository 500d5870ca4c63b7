package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chapterhub_backend/internals/features/events/controller"
	"chapterhub_backend/internals/features/events/service"
	helperOSS "chapterhub_backend/internals/helpers/oss"
)

// Back office — the caller group already carries auth + role middleware.
func EventAdminRoutes(api fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewEventAdminController(service.NewEventService(db, blob))

	event := api.Group("/events")
	event.Get("/stats", ctrl.DashboardStats)
	event.Post("/", ctrl.CreateEvent)
	event.Patch("/:id", ctrl.UpdateEvent)
	event.Patch("/:id/status", ctrl.UpdateEventStatus)
	event.Patch("/:id/featured", ctrl.ToggleFeatured)
	event.Patch("/:id/participants", ctrl.UpdateParticipantCount)
	event.Get("/:id/registrations", ctrl.ListRegistrations)
	event.Delete("/:id", ctrl.DeleteEvent)
}
