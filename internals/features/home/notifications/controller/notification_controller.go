package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/features/home/notifications/model"
	helper "beasiswaku_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 📄 GET /api/a/notifications?application_id=&interviewer_id=&kind=
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.NotificationModel{})
	if raw := c.Query("application_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "application_id tidak valid")
		}
		q = q.Where("notification_application_id = ?", id)
	}
	if raw := c.Query("interviewer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "interviewer_id tidak valid")
		}
		q = q.Where("notification_interviewer_id = ?", id)
	}
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("notification_kind = ?", kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count notifications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	var notifications []model.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&notifications).Error; err != nil {
		log.Printf("[ERROR] list notifications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Berhasil mengambil notifikasi", notifications, pagination)
}
