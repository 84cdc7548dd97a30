package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
)

type activityLogRepository struct {
	baseRepository
}

func (r *activityLogRepository) ListRecent(ctx context.Context, limit int) (_ []*model.ActivityLog, err error) {
	defer r.observe("activity_log_list", time.Now(), &err)

	query := r.db.Rebind(`
		SELECT id, entity, entity_id, action, details, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)
	logs := []*model.ActivityLog{}
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, nil
}
