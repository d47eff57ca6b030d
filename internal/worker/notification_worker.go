package worker

import (
	"github.com/spec-kit/employee-service/internal/service"
)

// StartNotificationWorker registers the handlers that forward employee events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
