// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chapterhub_backend/internals/constants"
	contentRoute "chapterhub_backend/internals/features/contents/route"
	eventRoute "chapterhub_backend/internals/features/events/route"
	userRoute "chapterhub_backend/internals/features/users/route"
	helperOSS "chapterhub_backend/internals/helpers/oss"
	authMiddleware "chapterhub_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	// Blob storage is optional in dev: without OSS env the app still serves
	// everything except poster/attachment uploads.
	var blob helperOSS.BlobService
	if svc, err := helperOSS.NewOSSBlobServiceFromEnv("uploads"); err != nil {
		log.Printf("[WARN] OSS not configured, file uploads disabled: %v", err)
	} else {
		blob = svc
	}

	api := app.Group("/api")

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(api, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := api.Group("/u")
	eventRoute.EventUserRoutes(public, db, blob)
	contentRoute.ContentUserRoutes(public, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(
			constants.RoleErrorAdmin("the back office"),
			constants.AdminAndAbove...,
		),
	)
	eventRoute.EventAdminRoutes(admin, db, blob)
	contentRoute.ContentAdminRoutes(admin, db, blob)
}
