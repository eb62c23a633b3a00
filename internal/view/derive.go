package view

import (
	"sort"
	"strings"
	"time"

	"github.com/resolveit/complaint-sync/internal/domain"
)

// ComputeWorkload partitions the complaints assigned to email by stage. Emails
// match case-insensitively. Escalated complaints land in Other so the buckets
// always sum to the total.
func ComputeWorkload(cs []domain.Complaint, email string) domain.Workload {
	var w domain.Workload
	email = strings.TrimSpace(email)
	if email == "" {
		return w
	}
	for _, c := range cs {
		if !strings.EqualFold(c.AssignedTo, email) {
			continue
		}
		switch c.Status {
		case domain.StatusPending, domain.StatusAssigned:
			w.Assigned++
		case domain.StatusInProgress, domain.StatusUnderReview:
			w.InProgress++
		case domain.StatusResolved, domain.StatusClosed:
			w.Completed++
		default:
			w.Other++
		}
	}
	return w
}

// Stats are the dashboard tallies over a working set.
type Stats struct {
	Total         int                              `json:"total"`
	Open          int                              `json:"open"`
	PendingAction int                              `json:"pendingAction"`
	Escalated     int                              `json:"escalated"`
	Resolved      int                              `json:"resolved"`
	Unassigned    int                              `json:"unassigned"`
	ByStatus      map[domain.ComplaintStatus]int   `json:"byStatus"`
	ByPriority    map[domain.ComplaintPriority]int `json:"byPriority"`
}

// ComputeStats tallies cs. PendingAction counts what still needs an officer's
// attention: pending, assigned or escalated.
func ComputeStats(cs []domain.Complaint) Stats {
	s := Stats{
		ByStatus:   make(map[domain.ComplaintStatus]int, len(domain.ComplaintStatuses)),
		ByPriority: make(map[domain.ComplaintPriority]int, len(domain.ComplaintPriorities)),
	}
	for _, st := range domain.ComplaintStatuses {
		s.ByStatus[st] = 0
	}
	for _, p := range domain.ComplaintPriorities {
		s.ByPriority[p] = 0
	}
	for _, c := range cs {
		s.Total++
		s.ByStatus[c.Status]++
		s.ByPriority[c.Priority]++
		switch c.Status {
		case domain.StatusResolved, domain.StatusClosed:
			s.Resolved++
		default:
			s.Open++
		}
		switch c.Status {
		case domain.StatusPending, domain.StatusAssigned, domain.StatusEscalated:
			s.PendingAction++
		}
		if c.Escalated || c.Status == domain.StatusEscalated {
			s.Escalated++
		}
		if c.AssignedTo == "" {
			s.Unassigned++
		}
	}
	return s
}

// Overview computes the admin aggregate locally, in the same shape the
// service reports. Under-review is folded into in-progress and only high
// priority counts as HighPriority, as the service does.
func Overview(cs []domain.Complaint, officers []domain.Officer) domain.AnalyticsOverview {
	out := domain.AnalyticsOverview{
		TotalComplaints:   int64(len(cs)),
		Officers:          int64(len(officers)),
		Workload:          make(map[string]int64, len(officers)),
		PriorityBreakdown: make(map[domain.ComplaintPriority]int64, len(domain.ComplaintPriorities)),
		StatusBreakdown:   make(map[domain.ComplaintStatus]int64, len(domain.ComplaintStatuses)),
	}
	for _, p := range domain.ComplaintPriorities {
		out.PriorityBreakdown[p] = 0
	}
	for _, st := range []domain.ComplaintStatus{domain.StatusPending, domain.StatusAssigned, domain.StatusInProgress, domain.StatusResolved, domain.StatusEscalated, domain.StatusClosed} {
		out.StatusBreakdown[st] = 0
	}
	for _, o := range officers {
		out.Workload[o.Email] = 0
	}
	for _, c := range cs {
		status := c.Status
		if status == domain.StatusUnderReview {
			status = domain.StatusInProgress
		}
		out.StatusBreakdown[status]++
		out.PriorityBreakdown[c.Priority]++
		switch status {
		case domain.StatusPending:
			out.Pending++
		case domain.StatusAssigned:
			out.Assigned++
		case domain.StatusInProgress:
			out.InProgress++
		case domain.StatusResolved:
			out.Resolved++
		}
		if c.Priority == domain.PriorityHigh {
			out.HighPriority++
		}
		if _, known := out.Workload[c.AssignedTo]; known && c.AssignedTo != "" {
			out.Workload[c.AssignedTo]++
		}
	}
	return out
}

// TimelineKind classifies a timeline entry.
type TimelineKind string

const (
	TimelineSubmitted TimelineKind = "submitted"
	TimelineStatus    TimelineKind = "status"
	TimelineNote      TimelineKind = "note"
	TimelineReply     TimelineKind = "reply"
	TimelineEscalated TimelineKind = "escalated"
	TimelineUpdated   TimelineKind = "updated"
)

// TimelineEntry is one dated event in a complaint's history.
type TimelineEntry struct {
	Kind   TimelineKind `json:"kind"`
	At     time.Time    `json:"at"`
	Actor  string       `json:"actor,omitempty"`
	Detail string       `json:"detail"`
}

// Timeline orders a complaint's dated events oldest first, applying the same
// visibility rules as Project. Undated entries are omitted.
func Timeline(c domain.Complaint, viewer domain.Identity) []TimelineEntry {
	p := Project(c, viewer)
	entries := make([]TimelineEntry, 0, 2+len(p.StatusHistory)+len(p.Notes)+len(p.Replies))
	add := func(e TimelineEntry) {
		if !e.At.IsZero() {
			entries = append(entries, e)
		}
	}

	add(TimelineEntry{Kind: TimelineSubmitted, At: p.SubmittedAt, Actor: p.SubmittedBy, Detail: "Complaint submitted"})
	for _, h := range p.StatusHistory {
		detail := "Status changed to " + string(h.Status)
		if strings.TrimSpace(h.Notes) != "" {
			detail += ": " + h.Notes
		}
		add(TimelineEntry{Kind: TimelineStatus, At: h.ChangedAt, Actor: h.ChangedBy, Detail: detail})
	}
	for _, n := range p.Notes {
		add(TimelineEntry{Kind: TimelineNote, At: n.CreatedAt, Actor: n.CreatedBy, Detail: n.Content})
	}
	for _, r := range p.Replies {
		add(TimelineEntry{Kind: TimelineReply, At: r.CreatedAt, Actor: r.Label, Detail: r.Content})
	}
	if p.Escalated && p.EscalatedAt != nil {
		add(TimelineEntry{Kind: TimelineEscalated, At: *p.EscalatedAt, Detail: "Escalated: " + p.EscalationReason})
	}
	if len(p.StatusHistory) == 0 && p.LastUpdatedAt != nil {
		add(TimelineEntry{Kind: TimelineUpdated, At: *p.LastUpdatedAt, Actor: p.LastUpdatedBy, Detail: "Status is " + string(p.Status)})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].At.Before(entries[j].At) })
	return entries
}
