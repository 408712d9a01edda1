package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "beasiswaku_backend/internals/features/home/notifications/controller"
)

// NotificationAdminRoutes: outbox notifikasi (read-only untuk admin;
// penulisan dilakukan core ranking / interviewer).
func NotificationAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := notificationController.NewNotificationController(db)
	notifications := router.Group("/notifications")

	notifications.Get("/", ctrl.List)
}
