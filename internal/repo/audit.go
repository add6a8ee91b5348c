package repo

import (
	"context"

	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/util"
)

func (r *GormRepo) RecordAuditEvent(ctx context.Context, e *models.AuditEvent) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *GormRepo) ListAuditEvents(ctx context.Context, page, pageSize int) ([]models.AuditEvent, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&models.AuditEvent{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	from, limit := util.Calculate(page, pageSize)
	var events []models.AuditEvent
	if err := tx.Order("created_at desc").Offset(from).Limit(limit).Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
