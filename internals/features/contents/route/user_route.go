package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chapterhub_backend/internals/features/contents/controller"
)

// Public content sections — published items only, no login required.
func ContentUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewContentUserController(db)

	content := api.Group("/contents")
	content.Get("/", ctrl.ListPublished)
	content.Get("/featured", ctrl.FeaturedContents)
	content.Get("/:slug", ctrl.GetBySlug)
}
