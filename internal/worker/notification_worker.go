package worker

import (
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// StartNotificationWorker registers notification handlers and stats cache
// invalidation on the dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, stats *service.StatsService) {
	if dispatcher == nil {
		return
	}
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if stats != nil {
		stats.RegisterInvalidation(dispatcher)
	}
}
