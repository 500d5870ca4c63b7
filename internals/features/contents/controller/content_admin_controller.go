package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chapterhub_backend/internals/features/contents/dto"
	"chapterhub_backend/internals/features/contents/model"
	helper "chapterhub_backend/internals/helpers"
	helperOSS "chapterhub_backend/internals/helpers/oss"
)

var validateContent = validator.New()

// ContentAdminController manages the four content sections (news,
// publications, resources, blog) from the back office.
type ContentAdminController struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewContentAdminController(db *gorm.DB, blob helperOSS.BlobService) *ContentAdminController {
	return &ContentAdminController{DB: db, Blob: blob}
}

// 🟢 POST /api/a/contents
// Optional multipart fields: "image" (cover, re-encoded to WebP) and
// "attachment" (uploaded as-is, e.g. a publication PDF).
func (ctrl *ContentAdminController) CreateContent(c *fiber.Ctx) error {
	var req dto.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateContent.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !model.IsValidContentType(req.ContentType) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content type")
	}

	item := req.ToModel()

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		if ctrl.Blob == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage unavailable")
		}
		url, err := ctrl.Blob.UploadImage(c.UserContext(), "contents/"+req.ContentType, fh)
		if err != nil {
			log.Printf("[ERROR] upload content image: %v", err)
			return helper.JsonError(c, fiber.StatusBadGateway, "Image upload failed")
		}
		item.ContentImageURL = url
	}
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		if ctrl.Blob == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage unavailable")
		}
		url, _, err := ctrl.Blob.UploadFile(c.UserContext(), "contents/"+req.ContentType+"/files", fh)
		if err != nil {
			log.Printf("[ERROR] upload content attachment: %v", err)
			return helper.JsonError(c, fiber.StatusBadGateway, "Attachment upload failed")
		}
		item.ContentFileURL = url
	}

	if err := ctrl.DB.Create(item).Error; err != nil {
		log.Printf("[ERROR] create content: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create content")
	}
	return helper.JsonCreated(c, "Content created", dto.ToContentResponse(item))
}

// 🟢 GET /api/a/contents  (any status, filter/search/pagination)
func (ctrl *ContentAdminController) ListContents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctrl.DB.Model(&model.ContentModel{})
	if t := c.Query("type"); t != "" {
		q = q.Where("content_type = ?", t)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("content_status = ?", s)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pat := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(content_title) LIKE ? OR LOWER(content_description) LIKE ?", pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count contents: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count contents")
	}

	var items []model.ContentModel
	if err := q.Order("content_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		log.Printf("[ERROR] list contents: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load contents")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Contents loaded", dto.ToContentResponseList(items), pagination)
}

// 🟢 GET /api/a/contents/:id  (any status)
func (ctrl *ContentAdminController) GetContentByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}
	var item model.ContentModel
	if err := ctrl.DB.First(&item, "content_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load content")
	}
	return helper.JsonOK(c, "Content found", dto.ToContentResponse(&item))
}

// 🟡 PATCH /api/a/contents/:id
func (ctrl *ContentAdminController) UpdateContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	var item model.ContentModel
	if err := ctrl.DB.First(&item, "content_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
	}

	var req dto.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateContent.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil && ctrl.Blob != nil {
		if item.ContentImageURL != "" {
			if err := ctrl.Blob.DeleteByPublicURL(c.UserContext(), item.ContentImageURL); err != nil {
				log.Printf("[WARN] delete old content image %s: %v", id, err)
			}
		}
		url, err := ctrl.Blob.UploadImage(c.UserContext(), "contents/"+item.ContentType, fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Image upload failed")
		}
		item.ContentImageURL = url
	}
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil && ctrl.Blob != nil {
		if item.ContentFileURL != "" {
			if err := ctrl.Blob.DeleteByPublicURL(c.UserContext(), item.ContentFileURL); err != nil {
				log.Printf("[WARN] delete old content attachment %s: %v", id, err)
			}
		}
		url, _, err := ctrl.Blob.UploadFile(c.UserContext(), "contents/"+item.ContentType+"/files", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Attachment upload failed")
		}
		item.ContentFileURL = url
	}

	req.ApplyToModel(&item)
	item.ContentUpdatedAt = time.Now()

	if err := ctrl.DB.Save(&item).Error; err != nil {
		log.Printf("[ERROR] update content: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update content")
	}
	return helper.JsonUpdated(c, "Content updated", dto.ToContentResponse(&item))
}

// 🟡 PATCH /api/a/contents/:id/status
func (ctrl *ContentAdminController) UpdateContentStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	var req dto.UpdateContentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !model.IsValidContentStatus(req.ContentStatus) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content status")
	}

	res := ctrl.DB.Model(&model.ContentModel{}).
		Where("content_id = ?", id).
		Updates(map[string]interface{}{
			"content_status":     req.ContentStatus,
			"content_updated_at": time.Now(),
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update status")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
	}

	var item model.ContentModel
	if err := ctrl.DB.First(&item, "content_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload content")
	}
	return helper.JsonUpdated(c, "Content status updated", dto.ToContentResponse(&item))
}

// 🟡 PATCH /api/a/contents/:id/featured — single atomic flip
func (ctrl *ContentAdminController) ToggleFeatured(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	res := ctrl.DB.Model(&model.ContentModel{}).
		Where("content_id = ?", id).
		UpdateColumn("content_is_featured", gorm.Expr("NOT content_is_featured"))
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to toggle featured flag")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
	}

	var item model.ContentModel
	if err := ctrl.DB.First(&item, "content_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload content")
	}
	return helper.JsonUpdated(c, "Content featured flag toggled", dto.ToContentResponse(&item))
}

// 🔴 DELETE /api/a/contents/:id
// Blob cleanup is best-effort; a failed storage delete never blocks the row
// delete.
func (ctrl *ContentAdminController) DeleteContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	var item model.ContentModel
	if err := ctrl.DB.First(&item, "content_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load content")
	}

	if ctrl.Blob != nil {
		for _, url := range []string{item.ContentImageURL, item.ContentFileURL} {
			if url == "" {
				continue
			}
			if err := ctrl.Blob.DeleteByPublicURL(c.UserContext(), url); err != nil {
				log.Printf("[WARN] delete content blob %s: %v", id, err)
			}
		}
	}

	if err := ctrl.DB.Delete(&model.ContentModel{}, "content_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete content")
	}
	return helper.JsonDeleted(c, "Content deleted", nil)
}
