// Package normalize converts Remote Complaint Service records into canonical
// domain values and back.
package normalize

import (
	"strings"

	"github.com/resolveit/complaint-sync/internal/domain"
)

// Status lowercases raw and turns underscores into hyphens. An absent value is
// pending. The result is not validated; see Complaint.
func Status(raw string) domain.ComplaintStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return domain.StatusPending
	}
	return domain.ComplaintStatus(strings.ReplaceAll(s, "_", "-"))
}

// Priority lowercases raw. An absent value is medium.
func Priority(raw string) domain.ComplaintPriority {
	p := strings.ToLower(strings.TrimSpace(raw))
	if p == "" {
		return domain.PriorityMedium
	}
	return domain.ComplaintPriority(strings.ReplaceAll(p, "_", "-"))
}

// DenormalizeStatus renders s in the service's UPPER_SNAKE form.
func DenormalizeStatus(s domain.ComplaintStatus) string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "-", "_"))
}

// DenormalizePriority renders p in the service's UPPER form.
func DenormalizePriority(p domain.ComplaintPriority) string {
	return strings.ToUpper(strings.ReplaceAll(string(p), "-", "_"))
}

// Role maps service role strings (CITIZEN, ROLE_OFFICER, admin, ...) onto a
// domain role. Unknown roles yield the empty role.
func Role(raw string) domain.Role {
	r := strings.ToLower(strings.TrimSpace(raw))
	r = strings.TrimPrefix(r, "role_")
	switch domain.Role(r) {
	case domain.RoleCitizen, domain.RoleOfficer, domain.RoleAdmin:
		return domain.Role(r)
	case "user":
		return domain.RoleCitizen
	}
	return ""
}

// DenormalizeRole renders a role for registration requests.
func DenormalizeRole(r domain.Role) string {
	return strings.ToUpper(string(r))
}

func availability(raw string) domain.OfficerAvailability {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free":
		return domain.AvailabilityFree
	case "busy":
		return domain.AvailabilityBusy
	case "overloaded":
		return domain.AvailabilityOverloaded
	}
	return ""
}
