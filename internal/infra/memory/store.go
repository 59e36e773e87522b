// Package memory is an in-process implementation of every repository
// port. It enforces the same uniqueness and foreign-key rules as the
// postgres schema so use cases behave identically against both.
package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Store struct {
	mu sync.RWMutex

	users         map[models.UserID]models.User
	links         map[models.Role]map[models.LinkID]models.RoleLink
	treatments    map[uuid.UUID]models.Treatment
	joins         map[uuid.UUID]map[models.LinkID]bool
	consultations map[uuid.UUID]models.Consultation
	notifications map[uuid.UUID]models.Notification
	auditLogs     []models.AuditLog
}

func New() *Store {
	return &Store{
		users: make(map[models.UserID]models.User),
		links: map[models.Role]map[models.LinkID]models.RoleLink{
			models.RoleAdmin:        {},
			models.RoleProfessional: {},
			models.RoleClient:       {},
		},
		treatments:    make(map[uuid.UUID]models.Treatment),
		joins:         make(map[uuid.UUID]map[models.LinkID]bool),
		consultations: make(map[uuid.UUID]models.Consultation),
		notifications: make(map[uuid.UUID]models.Notification),
	}
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s} }
func (s *Store) Treatments() *TreatmentRepository       { return &TreatmentRepository{s} }
func (s *Store) Consultations() *ConsultationRepository { return &ConsultationRepository{s} }
func (s *Store) Statistics() *StatisticsRepository      { return &StatisticsRepository{s} }
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s} }
func (s *Store) Audit() *AuditRepository                 { return &AuditRepository{s} }

// caller holds the lock
func (s *Store) linkByUser(role models.Role, userID models.UserID) (models.RoleLink, bool) {
	for _, l := range s.links[role] {
		if l.UserID == userID {
			return l, true
		}
	}
	return models.RoleLink{}, false
}

// caller holds the lock
func (s *Store) hydrate(c models.Consultation) models.Consultation {
	if l, ok := s.links[models.RoleClient][c.ClientID]; ok {
		c.Client = models.Client{ID: l.ID, UserID: l.UserID, User: s.users[l.UserID]}
	}
	if l, ok := s.links[models.RoleProfessional][c.ProfessionalID]; ok {
		c.Professional = models.Professional{ID: l.ID, UserID: l.UserID, User: s.users[l.UserID]}
	}
	if t, ok := s.treatments[c.TreatmentID]; ok {
		c.Treatment = t
	}
	return c
}

// caller holds the lock
func (s *Store) sortedConsultations(keep func(models.Consultation) bool) []models.Consultation {
	out := make([]models.Consultation, 0)
	for _, c := range s.consultations {
		if keep(c) {
			out = append(out, s.hydrate(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out
}
