package models

import (
	"encoding/json"
	"time"
)

// AuditAction is the kind of mutation an audit entry records
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditLogEntry is an immutable record of a single create/update/delete
// mutation on a tracked entity. Rows are append-only: they are written
// as a side effect of mutations on other entities and never modified.
//
// CREATE entries have OldValue nil, DELETE entries have NewValue nil,
// UPDATE entries carry both (OldValue may be nil when the pre-image
// could not be loaded).
type AuditLogEntry struct {
	ID         int             `json:"id" db:"id"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	RecordID   int             `json:"record_id" db:"record_id"`
	Action     AuditAction     `json:"action" db:"action"`
	OldValue   json.RawMessage `json:"old_value,omitempty" db:"old_value"`
	NewValue   json.RawMessage `json:"new_value,omitempty" db:"new_value"`
	ActorID    *int            `json:"actor_id,omitempty" db:"actor_id"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// AuditFilter selects audit entries for reporting queries
type AuditFilter struct {
	EntityType string      `json:"entity_type"`
	ActorID    *int        `json:"actor_id"`
	Action     AuditAction `json:"action"`
	Start      *time.Time  `json:"start"`
	End        *time.Time  `json:"end"`
	SortAsc    bool        `json:"sort_asc"`
	Limit      int         `json:"limit"`
	Page       int         `json:"page"` // 1-based
}
