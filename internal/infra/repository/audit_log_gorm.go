package repository

import (
	"context"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
)

const (
	auditLogDefaultLimit = 50
	auditLogMaxLimit     = 200
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(gdb *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: gdb}
}

func (r *auditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	return db.Classify(r.db.WithContext(ctx).Create(&entry).Error)
}

// List returns newest entries first.
func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Scopes(auditLogWhere(filter), auditLogWindow(filter.Limit, filter.Offset)).
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func auditLogWhere(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		conds := []struct {
			clause string
			set    bool
			value  any
		}{
			{"actor_user_id = ?", f.ActorUserID != nil, deref(f.ActorUserID)},
			{"action = ?", f.Action != nil, deref(f.Action)},
			{"resource_type = ?", f.ResourceType != nil, deref(f.ResourceType)},
			{"resource_id = ?", f.ResourceID != nil, deref(f.ResourceID)},
			{"created_at >= ?", f.CreatedFrom != nil, deref(f.CreatedFrom)},
			{"created_at <= ?", f.CreatedTo != nil, deref(f.CreatedTo)},
		}
		for _, c := range conds {
			if c.set {
				q = q.Where(c.clause, c.value)
			}
		}
		return q
	}
}

// limit は 1..200、範囲外はデフォルト
func auditLogWindow(limit, offset int) func(*gorm.DB) *gorm.DB {
	if limit <= 0 || limit > auditLogMaxLimit {
		limit = auditLogDefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Limit(limit).Offset(offset)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
