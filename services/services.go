package services

import (
	"github.com/hackvent/hackvent-backend/repositories"
)

// Services struct holds all service interfaces
type Services struct {
	Users    UserService
	Events   EventService
	Teams    TeamService
	Sponsors SponsorService
	Hardware HardwareService
	Audit    AuditService
}

// NewServices creates and initializes all services
func NewServices(repos *repositories.Repositories, tokens TokenIssuer) *Services {
	return &Services{
		Users:    NewUserService(repos.Users, repos.Events, repos.Participants, tokens),
		Events:   NewEventService(repos.Events, repos.Participants),
		Teams:    NewTeamService(repos.Teams, repos.Events, repos.Participants),
		Sponsors: NewSponsorService(repos.Sponsors, repos.Events),
		Hardware: NewHardwareService(repos.Hardware),
		Audit:    NewAuditService(repos.Audit),
	}
}
