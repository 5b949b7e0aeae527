package worker

import (
	"github.com/spec-kit/airport-dashboard/internal/service"
)

// StartAuditWorker registers audit log handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
