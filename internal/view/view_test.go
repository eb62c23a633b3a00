package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolveit/complaint-sync/internal/domain"
)

var (
	citizen = domain.Identity{Email: "jane@example.com", Role: domain.RoleCitizen}
	officer = domain.Identity{Email: "olu@city.gov", Role: domain.RoleOfficer}
	admin   = domain.Identity{Email: "root@city.gov", Role: domain.RoleAdmin}
)

func TestCanAccess(t *testing.T) {
	adminOnly := []domain.Role{domain.RoleAdmin}
	assert.True(t, CanAccess(adminOnly, admin))
	assert.False(t, CanAccess(adminOnly, officer))
	assert.False(t, CanAccess(adminOnly, domain.Identity{}))
	assert.False(t, CanAccess(nil, admin))
}

func TestDashboardFor(t *testing.T) {
	d, ok := DashboardFor(officer)
	require.True(t, ok)
	assert.Equal(t, DashboardOfficer, d.Kind)
	assert.True(t, d.Capabilities.UpdateStatus)
	assert.True(t, d.Capabilities.ViewPrivateNotes)
	assert.False(t, d.Capabilities.Assign)
	assert.False(t, d.Capabilities.SubmitComplaint)

	d, ok = DashboardFor(citizen)
	require.True(t, ok)
	assert.True(t, d.Capabilities.SubmitComplaint)
	assert.True(t, d.Capabilities.Reply)
	assert.False(t, d.Capabilities.ViewAnalytics)

	_, ok = DashboardFor(domain.Identity{Role: "guest"})
	assert.False(t, ok)
}

func anonymousComplaint() domain.Complaint {
	return domain.Complaint{
		ID:          1,
		Title:       "Noise",
		IsAnonymous: true,
		SubmittedBy: "jane@example.com",
		CitizenName: "Jane Doe",
		User:        &domain.UserRef{ID: 9, Email: "jane@example.com", Name: "Jane Doe"},
		Notes: []domain.Note{
			{ID: 1, Content: "public note"},
			{ID: 2, Content: "internal only", IsPrivate: true},
		},
		Replies: []domain.Reply{
			{ID: 1, Content: "we are on it", AuthorName: "Clerk Ada", IsAdminReply: true},
			{ID: 2, Content: "thanks", AuthorName: "J."},
			{ID: 3, Content: "?", AuthorName: ""},
		},
	}
}

func TestProjectSuppressesAnonymousIdentity(t *testing.T) {
	for _, viewer := range []domain.Identity{citizen, officer, admin, {Email: "other@example.com", Role: domain.RoleCitizen}} {
		v := Project(anonymousComplaint(), viewer)
		raw, err := json.Marshal(v)
		require.NoError(t, err)

		assert.Empty(t, v.CitizenName)
		assert.Nil(t, v.User)
		assert.NotContains(t, string(raw), "Jane Doe")
		if viewer.Email != citizen.Email {
			assert.NotContains(t, string(raw), "jane@example.com", viewer.Email)
		}
	}
}

func TestProjectKeepsNamedComplaints(t *testing.T) {
	c := anonymousComplaint()
	c.IsAnonymous = false
	v := Project(c, officer)
	assert.Equal(t, "Jane Doe", v.CitizenName)
	require.NotNil(t, v.User)
}

func TestPrivateNotesOnlyForStaff(t *testing.T) {
	assert.Len(t, Project(anonymousComplaint(), citizen).Notes, 1)
	assert.Len(t, Project(anonymousComplaint(), officer).Notes, 2)
	assert.Len(t, Project(anonymousComplaint(), admin).Notes, 2)
}

func TestReplyLabelsIgnoreViewer(t *testing.T) {
	c := anonymousComplaint()
	c.IsAnonymous = false
	for _, viewer := range []domain.Identity{citizen, officer, admin} {
		v := Project(c, viewer)
		assert.Equal(t, LabelAuthority, v.Replies[0].Label)
		assert.Equal(t, "J.", v.Replies[1].Label)
		assert.Equal(t, LabelCitizen, v.Replies[2].Label)
	}
}

func TestAnonymousReplyAuthorsMaskedFromOthers(t *testing.T) {
	c := anonymousComplaint()
	c.Replies = append(c.Replies, domain.Reply{
		ID:         4,
		Content:    "still loud",
		CreatedBy:  "jane@example.com",
		AuthorName: "jane@example.com",
		CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})

	for _, viewer := range []domain.Identity{officer, admin} {
		v := Project(c, viewer)
		assert.Equal(t, "Clerk Ada", v.Replies[0].AuthorName)
		assert.Equal(t, LabelAuthority, v.Replies[0].Label)
		for _, r := range v.Replies[1:] {
			assert.Equal(t, LabelCitizen, r.AuthorName)
			assert.Equal(t, LabelCitizen, r.Label)
		}
		for _, e := range Timeline(c, viewer) {
			assert.NotEqual(t, "jane@example.com", e.Actor)
		}
	}

	own := Project(c, citizen)
	assert.Equal(t, "J.", own.Replies[1].Label)
	assert.Equal(t, "jane@example.com", own.Replies[3].AuthorName)
}

func TestFeedbackHiddenFromOfficerUnlessShared(t *testing.T) {
	c := anonymousComplaint()
	c.Feedback = &domain.Feedback{Content: "slow", Rating: 2}
	assert.Nil(t, Project(c, officer).Feedback)
	assert.NotNil(t, Project(c, admin).Feedback)

	c.Feedback.VisibleToOfficer = true
	assert.NotNil(t, Project(c, officer).Feedback)
}

func TestFilterApply(t *testing.T) {
	cs := []domain.Complaint{
		{ID: 1, Title: "Pothole on Main St", Status: domain.StatusPending, Priority: domain.PriorityHigh},
		{ID: 2, Title: "Broken light", Status: domain.StatusResolved, Priority: domain.PriorityLow},
		{ID: 3, Title: "Another pothole", Status: domain.StatusPending, Priority: domain.PriorityLow},
	}
	assert.Len(t, Filter{Status: domain.StatusPending}.Apply(cs), 2)
	assert.Len(t, Filter{Query: "POTHOLE", Priority: domain.PriorityLow}.Apply(cs), 1)
	assert.Len(t, Filter{}.Apply(cs), 3)
}

func TestWorkloadPartitionCoversEveryAssignment(t *testing.T) {
	email := "olu@city.gov"
	var cs []domain.Complaint
	for i, st := range domain.ComplaintStatuses {
		cs = append(cs, domain.Complaint{ID: int64(i + 1), Status: st, AssignedTo: email})
		cs = append(cs, domain.Complaint{ID: int64(100 + i), Status: st, AssignedTo: "someone@city.gov"})
	}

	w := ComputeWorkload(cs, email)
	assert.Equal(t, 2, w.Assigned)
	assert.Equal(t, 2, w.InProgress)
	assert.Equal(t, 2, w.Completed)
	assert.Equal(t, 1, w.Other)
	assert.Equal(t, len(domain.ComplaintStatuses), w.Total())
	assert.Equal(t, domain.Workload{}, ComputeWorkload(cs, ""))
	assert.Equal(t, w, ComputeWorkload(cs, " Olu@City.GOV "))
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats([]domain.Complaint{
		{ID: 1, Status: domain.StatusPending, Priority: domain.PriorityUrgent},
		{ID: 2, Status: domain.StatusResolved, Priority: domain.PriorityLow, AssignedTo: "o@city.gov"},
		{ID: 3, Status: domain.StatusEscalated, Priority: domain.PriorityHigh, Escalated: true, AssignedTo: "o@city.gov"},
	})
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Open)
	assert.Equal(t, 2, s.PendingAction)
	assert.Equal(t, 1, s.Escalated)
	assert.Equal(t, 1, s.Unassigned)
	assert.Equal(t, 1, s.ByPriority[domain.PriorityUrgent])
	assert.Equal(t, 0, s.ByStatus[domain.StatusClosed])
}

func TestOverviewMatchesServiceShape(t *testing.T) {
	officers := []domain.Officer{{Email: "a@city.gov"}, {Email: "b@city.gov"}}
	o := Overview([]domain.Complaint{
		{ID: 1, Status: domain.StatusUnderReview, Priority: domain.PriorityHigh, AssignedTo: "a@city.gov"},
		{ID: 2, Status: domain.StatusInProgress, Priority: domain.PriorityUrgent, AssignedTo: "a@city.gov"},
		{ID: 3, Status: domain.StatusPending, Priority: domain.PriorityMedium, AssignedTo: "ghost@city.gov"},
	}, officers)

	assert.Equal(t, int64(3), o.TotalComplaints)
	assert.Equal(t, int64(2), o.InProgress)
	assert.Equal(t, int64(2), o.StatusBreakdown[domain.StatusInProgress])
	assert.Equal(t, int64(1), o.HighPriority)
	assert.Equal(t, int64(2), o.Workload["a@city.gov"])
	assert.Equal(t, int64(0), o.Workload["b@city.gov"])
	assert.NotContains(t, o.Workload, "ghost@city.gov")
	assert.Equal(t, int64(2), o.Officers)
}

func TestTimelineOrdersAndFilters(t *testing.T) {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	escalated := base.Add(3 * time.Hour)
	c := domain.Complaint{
		ID:          5,
		SubmittedBy: "jane@example.com",
		SubmittedAt: base,
		Escalated:   true,
		EscalatedAt: &escalated,
		Notes: []domain.Note{
			{Content: "secret", IsPrivate: true, CreatedAt: base.Add(time.Hour)},
		},
		Replies: []domain.Reply{
			{Content: "working", IsAdminReply: true, CreatedAt: base.Add(2 * time.Hour)},
		},
		StatusHistory: []domain.StatusChange{
			{Status: domain.StatusAssigned, ChangedAt: base.Add(30 * time.Minute)},
		},
	}

	entries := Timeline(c, citizen)
	kinds := make([]TimelineKind, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []TimelineKind{TimelineSubmitted, TimelineStatus, TimelineReply, TimelineEscalated}, kinds)
	assert.Equal(t, LabelAuthority, entries[2].Actor)

	assert.Len(t, Timeline(c, officer), 5)
}
