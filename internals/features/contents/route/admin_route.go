package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chapterhub_backend/internals/features/contents/controller"
	helperOSS "chapterhub_backend/internals/helpers/oss"
)

// Back office — the caller group already carries auth + role middleware.
func ContentAdminRoutes(api fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewContentAdminController(db, blob)

	content := api.Group("/contents")
	content.Get("/", ctrl.ListContents)
	content.Post("/", ctrl.CreateContent)
	content.Get("/:id", ctrl.GetContentByID)
	content.Patch("/:id", ctrl.UpdateContent)
	content.Patch("/:id/status", ctrl.UpdateContentStatus)
	content.Patch("/:id/featured", ctrl.ToggleFeatured)
	content.Delete("/:id", ctrl.DeleteContent)
}
