package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chapterhub_backend/internals/features/events/controller"
	"chapterhub_backend/internals/features/events/service"
	helperOSS "chapterhub_backend/internals/helpers/oss"
	middlewares "chapterhub_backend/internals/middlewares"
)

// Public catalog — no login required.
func EventUserRoutes(api fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewEventUserController(service.NewEventService(db, blob))

	event := api.Group("/events")
	event.Get("/", ctrl.ListEvents)
	event.Get("/upcoming", ctrl.UpcomingEvents)
	event.Get("/past", ctrl.PastEvents)
	event.Get("/featured", ctrl.FeaturedEvents)
	event.Get("/id/:id", ctrl.GetEventByID)
	event.Post("/:id/register", middlewares.EventRegistrationRateLimiter(), ctrl.RegisterForEvent)
	event.Get("/:slug", ctrl.GetEventBySlug)
}
