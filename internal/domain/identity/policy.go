package identity

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Action string

const (
	ActionViewUser          Action = "user:view"
	ActionListUsers         Action = "user:list"
	ActionUpdateUser        Action = "user:update"
	ActionDeleteUser        Action = "user:delete"
	ActionRegisterUser      Action = "user:register"
	ActionManageTreatments  Action = "treatment:manage"
	ActionListConsultations Action = "consultation:list_all"
	ActionViewStatistics    Action = "statistics:view"
	ActionViewAuditLogs     Action = "audit:view"
)

// anyRole as a target matches every role.
const anyRole models.Role = "*"

type rule struct {
	actor  models.Role
	action Action
	target models.Role
}

// policy lists every allowed (actor, action, target) triple. Anything
// absent is denied.
var policy = map[rule]bool{
	{models.RoleAdmin, ActionViewUser, anyRole}:          true,
	{models.RoleAdmin, ActionListUsers, anyRole}:         true,
	{models.RoleAdmin, ActionUpdateUser, anyRole}:        true,
	{models.RoleAdmin, ActionDeleteUser, anyRole}:        true,
	{models.RoleAdmin, ActionRegisterUser, anyRole}:      true,
	{models.RoleAdmin, ActionManageTreatments, anyRole}:  true,
	{models.RoleAdmin, ActionListConsultations, anyRole}: true,
	{models.RoleAdmin, ActionViewStatistics, anyRole}:    true,
	{models.RoleAdmin, ActionViewAuditLogs, anyRole}:     true,

	{models.RoleProfessional, ActionViewUser, models.RoleClient}:  true,
	{models.RoleProfessional, ActionListUsers, models.RoleClient}: true,
	{models.RoleProfessional, ActionManageTreatments, anyRole}:    true,
}

// selfActions are always allowed when actor and target are the same user.
var selfActions = map[Action]bool{
	ActionViewUser:   true,
	ActionUpdateUser: true,
	ActionDeleteUser: true,
}

// Actor is the authenticated caller.
type Actor struct {
	UserID models.UserID
	Role   models.Role
}

// Allowed evaluates the policy for a target role. Use anyRole-free
// targets; pass "" when the action has no target user.
func Allowed(actor models.Role, action Action, target models.Role) bool {
	if policy[rule{actor, action, anyRole}] {
		return true
	}
	if target == "" {
		return false
	}
	return policy[rule{actor, action, target}]
}

// Authorize is Allowed plus the self rule, returning Forbidden on deny.
func Authorize(actor Actor, action Action, target *models.User) error {
	if target != nil && target.ID == actor.UserID && selfActions[action] {
		return nil
	}

	var targetRole models.Role
	if target != nil {
		targetRole = target.Role
	}
	if !Allowed(actor.Role, action, targetRole) {
		return domain.Forbidden()
	}
	return nil
}
