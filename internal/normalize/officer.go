package normalize

import (
	"fmt"
	"strings"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/remote"
)

// Officer normalizes an officer directory entry.
func Officer(rec remote.OfficerRecord) domain.Officer {
	return domain.Officer{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        strings.TrimSpace(rec.Email),
		Department:   rec.Department,
		Availability: availability(rec.Availability),
	}
}

// Officers normalizes a directory, dropping entries without an email since
// assignment is keyed on it.
func Officers(recs []remote.OfficerRecord) []domain.Officer {
	out := make([]domain.Officer, 0, len(recs))
	for _, rec := range recs {
		o := Officer(rec)
		if o.Email == "" {
			continue
		}
		out = append(out, o)
	}
	return out
}

// PendingOfficers normalizes the approval queue.
func PendingOfficers(recs []remote.PendingOfficerRecord) []domain.PendingOfficer {
	out := make([]domain.PendingOfficer, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.PendingOfficer{
			ID:             rec.ID,
			Name:           rec.Name,
			Email:          rec.Email,
			Department:     rec.Department,
			Approved:       rec.Approved,
			CertificateURL: rec.CertificateURL,
		})
	}
	return out
}

// Analytics normalizes the admin aggregate. Breakdown keys arrive in wire
// form and are folded onto canonical values; unknown keys are dropped.
func Analytics(rec remote.AnalyticsRecord) domain.AnalyticsOverview {
	out := domain.AnalyticsOverview{
		TotalComplaints:   rec.TotalComplaints,
		Pending:           rec.Pending,
		Assigned:          rec.Assigned,
		InProgress:        rec.InProgress,
		Resolved:          rec.Resolved,
		HighPriority:      rec.HighPriority,
		Officers:          rec.Officers,
		Workload:          make(map[string]int64, len(rec.Workload)),
		PriorityBreakdown: make(map[domain.ComplaintPriority]int64, len(rec.PriorityBreakdown)),
		StatusBreakdown:   make(map[domain.ComplaintStatus]int64, len(rec.StatusBreakdown)),
	}
	for k, v := range rec.Workload {
		out.Workload[k] = v
	}
	for k, v := range rec.PriorityBreakdown {
		if p := Priority(k); p.Valid() {
			out.PriorityBreakdown[p] += v
		}
	}
	for k, v := range rec.StatusBreakdown {
		if s := Status(k); s.Valid() {
			out.StatusBreakdown[s] += v
		}
	}
	return out
}

// Identity builds the session identity from an auth response.
func Identity(rec remote.AuthRecord, token string) (domain.Identity, error) {
	role := Role(rec.Role)
	if !role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: role %q", ErrInvalidRecord, rec.Role)
	}
	return domain.Identity{
		ID:    rec.ID,
		Email: strings.TrimSpace(rec.Email),
		Name:  rec.Name,
		Role:  role,
		Token: token,
	}, nil
}
