package auditlog

import (
	"log"

	auditlogrepo "supplyhouse/internal/auditlog"
	"supplyhouse/pkg/models"
)

type Auditlog struct {
	r *auditlogrepo.AuditLogRepository
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	if err := a.r.PersistLog(auditLog, data); err != nil {
		log.Println("Unable to create AuditLog entry for id ", auditLog.ResourceID)
	}
}

func NewAuditLog(repository *auditlogrepo.AuditLogRepository) *Auditlog {
	return &Auditlog{r: repository}
}
