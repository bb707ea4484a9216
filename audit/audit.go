// Package audit produces an immutable history of create/update/delete
// mutations across tracked entity types. It attaches to the repository
// lifecycle-hook registry at startup, so individual repositories never
// know about logging.
package audit

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
	"github.com/hackvent/hackvent-backend/userctx"
)

// hookSlot names the callbacks this package installs. Re-attaching
// replaces the slot instead of stacking duplicates.
const hookSlot = "audit"

// DefaultExclusions are entity types that must never be audited: the
// audit log itself, user accounts (credential churn noise), and the
// participant-assignment join entity (log flooding from routine team
// assignment).
var DefaultExclusions = []string{
	repositories.EntityAuditLog,
	repositories.EntityUsers,
	"event_participants",
}

// Sink is the append-only store audit entries are written to
type Sink interface {
	Append(ctx context.Context, entry *models.AuditLogEntry) error
}

// Attach installs audit callbacks on every entity type registered in
// the hook registry, except those in exclusions. Attach is idempotent:
// calling it again replaces the previously installed callbacks.
func Attach(registry *repositories.HookRegistry, exclusions []string, sink Sink, log *logrus.Logger) {
	excluded := make(map[string]bool, len(exclusions))
	for _, name := range exclusions {
		excluded[name] = true
	}

	for _, hooks := range registry.Entities() {
		if excluded[hooks.Name()] {
			continue
		}

		entityType := hooks.Name()
		entityHooks := hooks

		hooks.OnAfterCreate(hookSlot, func(ctx context.Context, recordID int, instance any) {
			write(ctx, sink, log, &models.AuditLogEntry{
				EntityType: entityType,
				RecordID:   recordID,
				Action:     models.AuditCreate,
				NewValue:   marshalSnapshot(log, Sanitize(instance)),
				ActorID:    userctx.ActorID(ctx),
			})
		})

		hooks.OnBeforeUpdate(hookSlot, func(ctx context.Context, recordID int, instance any) {
			// The in-memory instance may already carry the new values,
			// so the pre-image comes from a fresh read. A failed read
			// (e.g. a concurrent delete) degrades to a nil old value
			// rather than losing the audit entry.
			var oldValue json.RawMessage
			previous, err := entityHooks.Snapshot(ctx, recordID)
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"entity_type": entityType,
					"record_id":   recordID,
				}).Warn("audit: could not load pre-update snapshot")
			} else {
				oldValue = marshalSnapshot(log, Sanitize(previous))
			}

			write(ctx, sink, log, &models.AuditLogEntry{
				EntityType: entityType,
				RecordID:   recordID,
				Action:     models.AuditUpdate,
				OldValue:   oldValue,
				NewValue:   marshalSnapshot(log, Sanitize(instance)),
				ActorID:    userctx.ActorID(ctx),
			})
		})

		hooks.OnBeforeDelete(hookSlot, func(ctx context.Context, recordID int, instance any) {
			write(ctx, sink, log, &models.AuditLogEntry{
				EntityType: entityType,
				RecordID:   recordID,
				Action:     models.AuditDelete,
				OldValue:   marshalSnapshot(log, Sanitize(instance)),
				ActorID:    userctx.ActorID(ctx),
			})
		})
	}
}

// write appends an audit entry, treating sink failure as non-fatal to
// the primary mutation: the failure is logged loudly and swallowed.
func write(ctx context.Context, sink Sink, log *logrus.Logger, entry *models.AuditLogEntry) {
	if err := sink.Append(ctx, entry); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"entity_type": entry.EntityType,
			"record_id":   entry.RecordID,
			"action":      entry.Action,
		}).Error("audit: failed to write audit entry")
	}
}

// Sanitize produces a plain snapshot of an entity's visible fields
// with the credential field stripped, regardless of entity type.
// Sanitizing nil yields nil.
func Sanitize(instance any) map[string]any {
	if instance == nil {
		return nil
	}

	raw, err := json.Marshal(instance)
	if err != nil {
		return nil
	}

	var snapshot map[string]any
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}

	delete(snapshot, "password")
	return snapshot
}

// marshalSnapshot serializes a sanitized snapshot for storage; nil
// snapshots stay nil (stored as SQL NULL, not the JSON string "null")
func marshalSnapshot(log *logrus.Logger, snapshot map[string]any) json.RawMessage {
	if snapshot == nil {
		return nil
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		log.WithError(err).Error("audit: failed to marshal snapshot")
		return nil
	}
	return raw
}
