package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/remote"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestStatusIsIdempotent(t *testing.T) {
	raws := []string{"IN_PROGRESS", "in-progress", "UNDER_REVIEW", "Pending", " resolved ", "", "CLOSED", "weird_VALUE"}
	for _, raw := range raws {
		once := Status(raw)
		assert.Equal(t, once, Status(string(once)), raw)
	}
	assert.Equal(t, domain.StatusInProgress, Status("IN_PROGRESS"))
	assert.Equal(t, domain.StatusInProgress, Status("in-progress"))
}

func TestDefaultsForAbsentEnums(t *testing.T) {
	assert.Equal(t, domain.StatusPending, Status(""))
	assert.Equal(t, domain.PriorityMedium, Priority(""))
}

func TestDenormalizeRoundTrip(t *testing.T) {
	for _, s := range domain.ComplaintStatuses {
		assert.Equal(t, s, Status(DenormalizeStatus(s)))
	}
	for _, p := range domain.ComplaintPriorities {
		assert.Equal(t, p, Priority(DenormalizePriority(p)))
	}
	assert.Equal(t, "UNDER_REVIEW", DenormalizeStatus(domain.StatusUnderReview))
	assert.Equal(t, "URGENT", DenormalizePriority(domain.PriorityUrgent))
}

func TestRoleMapping(t *testing.T) {
	assert.Equal(t, domain.RoleCitizen, Role("CITIZEN"))
	assert.Equal(t, domain.RoleOfficer, Role("ROLE_OFFICER"))
	assert.Equal(t, domain.RoleAdmin, Role("admin"))
	assert.Equal(t, domain.Role(""), Role("superuser"))
}

func TestComplaintAppliesDefaults(t *testing.T) {
	c, err := Complaint(remote.ComplaintRecord{
		ID:          12,
		Attachments: []string{"/files/a.png", "/files/b.png"},
		User:        &remote.UserRecord{ID: 3, Email: "jane@example.com", Name: "Jane"},
		AssignedOfficer: &remote.OfficerRecord{
			ID: 4, Name: "Olu", Email: "olu@city.gov", Department: "Roads", Availability: "BUSY",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, c.Title)
	assert.Equal(t, DefaultCategory, c.Category)
	assert.Equal(t, domain.StatusPending, c.Status)
	assert.Equal(t, domain.PriorityMedium, c.Priority)
	assert.Equal(t, 2, c.AttachmentCount)
	assert.NotNil(t, c.Notes)
	assert.NotNil(t, c.Replies)
	assert.Empty(t, c.Notes)
	assert.Equal(t, "jane@example.com", c.SubmittedBy)
	assert.Equal(t, "Jane", c.CitizenName)
	assert.Equal(t, "Roads", c.AssignedDepartment)
	assert.Equal(t, domain.AvailabilityBusy, c.AssignedOfficer.Availability)
}

func TestAttachmentCountPrefersExplicitValue(t *testing.T) {
	c, err := Complaint(remote.ComplaintRecord{ID: 1, AttachmentCount: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, c.AttachmentCount)

	c, err = Complaint(remote.ComplaintRecord{ID: 1, AttachmentCount: intPtr(0), Attachments: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, 1, c.AttachmentCount)
}

func TestReplyAuthorResolution(t *testing.T) {
	cases := []struct {
		name string
		rec  remote.ReplyRecord
		want string
		adm  bool
	}{
		{"explicit name", remote.ReplyRecord{AuthorName: "Clerk Ada", IsAdminReply: boolPtr(true)}, "Clerk Ada", true},
		{"creator", remote.ReplyRecord{CreatedBy: "jane@example.com"}, "jane@example.com", false},
		{"legacy admin flag", remote.ReplyRecord{AdminReply: boolPtr(true)}, LabelAuthority, true},
		{"new flag wins over legacy", remote.ReplyRecord{IsAdminReply: boolPtr(false), AdminReply: boolPtr(true)}, LabelCitizen, false},
		{"nothing", remote.ReplyRecord{}, LabelCitizen, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Reply(tc.rec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.AuthorName)
			assert.Equal(t, tc.adm, r.IsAdminReply)
		})
	}
}

func TestNoteLegacyPrivateFlag(t *testing.T) {
	n, err := Note(remote.NoteRecord{ID: 1, Content: "internal", Private: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, n.IsPrivate)
}

func TestComplaintRejectsUnnormalizableShapes(t *testing.T) {
	cases := map[string]remote.ComplaintRecord{
		"zero id":       {ID: 0},
		"bad status":    {ID: 1, Status: "ARCHIVED"},
		"bad priority":  {ID: 1, Priority: "CRITICAL"},
		"bad timestamp": {ID: 1, SubmittedAt: "yesterday"},
		"bad note time": {ID: 1, Notes: []remote.NoteRecord{{ID: 1, CreatedAt: "soon"}}},
		"negative lvl":  {ID: 1, EscalationLevel: intPtr(-2)},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Complaint(rec)
			assert.True(t, errors.Is(err, ErrInvalidRecord))
		})
	}
}

func TestComplaintsSeparatesRejected(t *testing.T) {
	list, rejected := Complaints([]remote.ComplaintRecord{{ID: 1}, {ID: -1}, {ID: 2, Status: "CLOSED"}})
	require.Len(t, list, 2)
	assert.Len(t, rejected, 1)
	assert.Equal(t, domain.StatusClosed, list[1].Status)
}

func TestParseTimeLayouts(t *testing.T) {
	want := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	for _, raw := range []string{"2024-03-01T09:30:00Z", "2024-03-01T09:30:00", "2024-03-01 09:30:00", "2024-03-01T10:30:00+01:00"} {
		got, err := ParseTime(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}
}

func TestComplaintIsIdempotentThroughRecord(t *testing.T) {
	c, err := Complaint(remote.ComplaintRecord{
		ID:               77,
		ReferenceNumber:  "RES-77",
		Title:            "Streetlight out",
		Category:         "Lighting",
		Status:           "ESCALATED",
		Priority:         "HIGH",
		AssignedTo:       "olu@city.gov",
		Anonymous:        boolPtr(true),
		SubmittedBy:      "jane@example.com",
		SubmittedAt:      "2024-03-01T09:30:00.123",
		LastUpdatedAt:    "2024-03-02T10:00:00Z",
		Escalated:        true,
		EscalationReason: "no response",
		EscalatedAt:      "2024-03-03T10:00:00Z",
		Attachments:      []string{"/files/a.png"},
		Notes:            []remote.NoteRecord{{ID: 1, Content: "called", CreatedAt: "2024-03-02T10:00:00Z", IsPrivate: boolPtr(true)}},
		Replies:          []remote.ReplyRecord{{ID: 2, Content: "on it", AdminReply: boolPtr(true)}},
		Feedback:         &remote.FeedbackRecord{ID: 3, Content: "thanks", Rating: intPtr(4)},
		StatusHistory:    []remote.StatusHistoryRecord{{ID: 4, Status: "PENDING", ChangedAt: "2024-03-01T09:30:00Z"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.EscalationLevel)

	again, err := Complaint(Record(c))
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestAnalyticsFoldsWireKeys(t *testing.T) {
	a := Analytics(remote.AnalyticsRecord{
		TotalComplaints:   3,
		StatusBreakdown:   map[string]int64{"IN_PROGRESS": 2, "in-progress": 1, "BOGUS": 9},
		PriorityBreakdown: map[string]int64{"HIGH": 1},
	})
	assert.Equal(t, int64(3), a.StatusBreakdown[domain.StatusInProgress])
	assert.Len(t, a.StatusBreakdown, 1)
	assert.Equal(t, int64(1), a.PriorityBreakdown[domain.PriorityHigh])
}

func TestIdentityRequiresKnownRole(t *testing.T) {
	id, err := Identity(remote.AuthRecord{ID: 1, Email: "a@b.c", Role: "ROLE_ADMIN"}, "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, id.Role)
	assert.Equal(t, "tok", id.Token)

	_, err = Identity(remote.AuthRecord{Role: "guest"}, "tok")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
