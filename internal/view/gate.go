// Package view composes role-gated, read-only projections of a working set.
package view

import "github.com/resolveit/complaint-sync/internal/domain"

// Fixed denial rendered in place of any guarded content.
const (
	AccessDeniedCode    = "ACCESS_DENIED"
	AccessDeniedMessage = "You do not have permission to view this page."
)

// Action names a guarded capability.
type Action string

const (
	ActionSubmit           Action = "submit"
	ActionUpdateStatus     Action = "update_status"
	ActionUpdatePriority   Action = "update_priority"
	ActionAssign           Action = "assign"
	ActionEscalate         Action = "escalate"
	ActionAddNote          Action = "add_note"
	ActionViewPrivateNotes Action = "view_private_notes"
	ActionReply            Action = "reply"
	ActionViewWorkload     Action = "view_workload"
	ActionManageOfficers   Action = "manage_officers"
	ActionViewAnalytics    Action = "view_analytics"
)

var (
	citizenOnly = []domain.Role{domain.RoleCitizen}
	staff       = []domain.Role{domain.RoleOfficer, domain.RoleAdmin}
	adminOnly   = []domain.Role{domain.RoleAdmin}
	everyone    = []domain.Role{domain.RoleCitizen, domain.RoleOfficer, domain.RoleAdmin}
)

// policy lists the roles allowed to perform each action.
var policy = map[Action][]domain.Role{
	ActionSubmit:           citizenOnly,
	ActionUpdateStatus:     staff,
	ActionUpdatePriority:   staff,
	ActionAssign:           adminOnly,
	ActionEscalate:         staff,
	ActionAddNote:          staff,
	ActionViewPrivateNotes: staff,
	ActionReply:            everyone,
	ActionViewWorkload:     staff,
	ActionManageOfficers:   adminOnly,
	ActionViewAnalytics:    adminOnly,
}

// AllowedRoles returns the roles permitted to perform a.
func AllowedRoles(a Action) []domain.Role {
	return append([]domain.Role{}, policy[a]...)
}

// CanAccess reports whether the identity's role is in allowed.
func CanAccess(allowed []domain.Role, identity domain.Identity) bool {
	for _, role := range allowed {
		if identity.HasRole(role) {
			return true
		}
	}
	return false
}

// Can reports whether identity may perform a.
func Can(a Action, identity domain.Identity) bool {
	return CanAccess(policy[a], identity)
}

// DashboardKind selects which dashboard a role sees.
type DashboardKind string

const (
	DashboardCitizen DashboardKind = "citizen"
	DashboardOfficer DashboardKind = "officer"
	DashboardAdmin   DashboardKind = "admin"
)

// Capabilities are the actions enabled on a dashboard.
type Capabilities struct {
	SubmitComplaint  bool `json:"submitComplaint"`
	UpdateStatus     bool `json:"updateStatus"`
	UpdatePriority   bool `json:"updatePriority"`
	Assign           bool `json:"assign"`
	Escalate         bool `json:"escalate"`
	AddNote          bool `json:"addNote"`
	ViewPrivateNotes bool `json:"viewPrivateNotes"`
	Reply            bool `json:"reply"`
	ViewWorkload     bool `json:"viewWorkload"`
	ManageOfficers   bool `json:"manageOfficers"`
	ViewAnalytics    bool `json:"viewAnalytics"`
}

// Dashboard is the composition chosen for an identity.
type Dashboard struct {
	Kind         DashboardKind `json:"kind"`
	Capabilities Capabilities  `json:"capabilities"`
}

// DashboardFor picks the dashboard for identity. ok is false for an unknown role.
func DashboardFor(identity domain.Identity) (Dashboard, bool) {
	var kind DashboardKind
	switch identity.Role {
	case domain.RoleCitizen:
		kind = DashboardCitizen
	case domain.RoleOfficer:
		kind = DashboardOfficer
	case domain.RoleAdmin:
		kind = DashboardAdmin
	default:
		return Dashboard{}, false
	}
	return Dashboard{
		Kind: kind,
		Capabilities: Capabilities{
			SubmitComplaint:  Can(ActionSubmit, identity),
			UpdateStatus:     Can(ActionUpdateStatus, identity),
			UpdatePriority:   Can(ActionUpdatePriority, identity),
			Assign:           Can(ActionAssign, identity),
			Escalate:         Can(ActionEscalate, identity),
			AddNote:          Can(ActionAddNote, identity),
			ViewPrivateNotes: Can(ActionViewPrivateNotes, identity),
			Reply:            Can(ActionReply, identity),
			ViewWorkload:     Can(ActionViewWorkload, identity),
			ManageOfficers:   Can(ActionManageOfficers, identity),
			ViewAnalytics:    Can(ActionViewAnalytics, identity),
		},
	}, true
}
