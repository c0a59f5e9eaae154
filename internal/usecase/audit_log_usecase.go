package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"
)

// AuditLogQuery is the raw query string of GET /admin/audit-logs.
type AuditLogQuery struct {
	ActorUserID  string
	Action       string
	ResourceType string
	ResourceID   string
	CreatedFrom  string
	CreatedTo    string
	Limit        string
	Offset       string
}

// 管理者操作の監査ログ（閲覧のみ）
type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

// List returns matching entries newest first.
func (u *AuditLogUsecase) List(ctx context.Context, actor *Actor, q AuditLogQuery) ([]model.AuditLog, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	f, err := parseAuditLogQuery(q)
	if err != nil {
		return nil, err
	}

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return nil, fromRepo(err)
	}
	return logs, nil
}

func parseAuditLogQuery(q AuditLogQuery) (repo.AuditLogFilter, error) {
	var f repo.AuditLogFilter
	fields := map[string]string{}

	intParam := func(name, raw string) *int64 {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			fields[name] = "A valid integer is required."
			return nil
		}
		return &n
	}

	f.ActorUserID = intParam("actor_user_id", q.ActorUserID)
	f.ResourceID = intParam("resource_id", q.ResourceID)
	if n := intParam("limit", q.Limit); n != nil {
		f.Limit = int(*n)
	}
	if n := intParam("offset", q.Offset); n != nil {
		f.Offset = int(*n)
	}

	timeParam := func(name, raw string) *time.Time {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fields[name] = "Datetime has wrong format. Use RFC3339, e.g. 2024-01-02T15:04:05Z."
			return nil
		}
		return &ts
	}
	f.CreatedFrom = timeParam("created_from", q.CreatedFrom)
	f.CreatedTo = timeParam("created_to", q.CreatedTo)

	if len(fields) > 0 {
		return repo.AuditLogFilter{}, NewValidationError(fields)
	}

	if v := strings.TrimSpace(q.Action); v != "" {
		a := model.AuditAction(strings.ToUpper(v))
		f.Action = &a
	}
	if v := strings.TrimSpace(q.ResourceType); v != "" {
		rt := model.AuditResourceType(strings.ToLower(v))
		f.ResourceType = &rt
	}
	return f, nil
}
