package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chapterhub_backend/internals/features/contents/dto"
	"chapterhub_backend/internals/features/contents/model"
	helper "chapterhub_backend/internals/helpers"
)

// ContentUserController serves the public site: published items only.
type ContentUserController struct {
	DB *gorm.DB
}

func NewContentUserController(db *gorm.DB) *ContentUserController {
	return &ContentUserController{DB: db}
}

// 🟢 GET /api/u/contents
func (ctrl *ContentUserController) ListPublished(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctrl.DB.Model(&model.ContentModel{}).
		Where("content_status = ?", model.ContentStatusPublished)
	if t := c.Query("type"); t != "" {
		q = q.Where("content_type = ?", t)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pat := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(content_title) LIKE ? OR LOWER(content_description) LIKE ?", pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count published contents: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count contents")
	}

	var items []model.ContentModel
	if err := q.Order("content_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		log.Printf("[ERROR] list published contents: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load contents")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Contents loaded", dto.ToContentResponseList(items), pagination)
}

// 🟢 GET /api/u/contents/featured
func (ctrl *ContentUserController) FeaturedContents(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	if limit < 1 {
		limit = 5
	}

	var items []model.ContentModel
	if err := ctrl.DB.
		Where("content_status = ? AND content_is_featured = ?", model.ContentStatusPublished, true).
		Order("content_created_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		log.Printf("[ERROR] featured contents: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load featured contents")
	}
	return helper.JsonOK(c, "Featured contents loaded", dto.ToContentResponseList(items))
}

// 🟢 GET /api/u/contents/:slug
func (ctrl *ContentUserController) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Slug must not be empty")
	}

	var item model.ContentModel
	if err := ctrl.DB.
		Where("content_slug = ? AND content_status = ?", slug, model.ContentStatusPublished).
		First(&item).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
	}
	return helper.JsonOK(c, "Content found", dto.ToContentResponse(&item))
}
