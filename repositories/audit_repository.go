package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hackvent/hackvent-backend/models"
)

// AuditRepository handles audit log persistence. The table is
// append-only: there are no update or delete operations.
type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditLogEntry) error
	Search(ctx context.Context, filter models.AuditFilter) ([]models.AuditLogEntry, int, error)
}

// auditRepository implements AuditRepository interface
type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Append inserts a new audit log entry
func (r *auditRepository) Append(ctx context.Context, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (entity_type, record_id, action, old_value, new_value, actor_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	// NULL columns for absent snapshots, not the string "null"
	var oldValue, newValue any
	if entry.OldValue != nil {
		oldValue = string(entry.OldValue)
	}
	if entry.NewValue != nil {
		newValue = string(entry.NewValue)
	}

	result, err := r.db.ExecContext(ctx, query,
		entry.EntityType,
		entry.RecordID,
		string(entry.Action),
		oldValue,
		newValue,
		entry.ActorID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = int(id)
	return nil
}

// Search retrieves a page of audit entries matching the filter along
// with the total match count for pagination metadata
func (r *auditRepository) Search(ctx context.Context, filter models.AuditFilter) ([]models.AuditLogEntry, int, error) {
	var conditions []string
	var args []any

	if filter.EntityType != "" {
		conditions = append(conditions, "entity_type = ?")
		args = append(args, filter.EntityType)
	}
	if filter.ActorID != nil {
		conditions = append(conditions, "actor_id = ?")
		args = append(args, *filter.ActorID)
	}
	if filter.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.Start != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *filter.End)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_log"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	order := " ORDER BY created_at DESC, id DESC"
	if filter.SortAsc {
		order = " ORDER BY created_at ASC, id ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, entity_type, record_id, action, old_value, new_value, actor_id, created_at
		FROM audit_log` + where + order + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		var action string
		var oldValue, newValue sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.EntityType,
			&entry.RecordID,
			&action,
			&oldValue,
			&newValue,
			&entry.ActorID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		entry.Action = models.AuditAction(action)
		if oldValue.Valid {
			entry.OldValue = []byte(oldValue.String)
		}
		if newValue.Valid {
			entry.NewValue = []byte(newValue.String)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return entries, total, nil
}
