package repositories

import (
	"database/sql"
)

// Entity type names used for hook registration and audit entries
const (
	EntityUsers          = "users"
	EntityEvents         = "events"
	EntityTeams          = "teams"
	EntitySponsors       = "sponsors"
	EntitySponsorTiers   = "sponsor_tiers"
	EntityEventSponsors  = "event_sponsors"
	EntityHardware       = "hardware"
	EntityHardwareImages = "hardware_images"
	EntityAuditLog       = "audit_log"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Users        UserRepository
	Events       EventRepository
	Teams        TeamRepository
	Participants ParticipantRepository
	Sponsors     SponsorRepository
	Hardware     HardwareRepository
	Audit        AuditRepository

	// Hooks is the lifecycle-hook registry the repositories above
	// register themselves into; interceptors attach to it at startup.
	Hooks *HookRegistry
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	registry := NewHookRegistry()
	return &Repositories{
		Users:        NewUserRepository(db, registry),
		Events:       NewEventRepository(db, registry),
		Teams:        NewTeamRepository(db, registry),
		Participants: NewParticipantRepository(db),
		Sponsors:     NewSponsorRepository(db, registry),
		Hardware:     NewHardwareRepository(db, registry),
		Audit:        NewAuditRepository(db),
		Hooks:        registry,
	}
}
