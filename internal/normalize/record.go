package normalize

import (
	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/remote"
)

// Record renders a canonical complaint back into the service's wire shape.
// Complaint(Record(c)) equals c for any c produced by Complaint.
func Record(c domain.Complaint) remote.ComplaintRecord {
	anonymous := c.IsAnonymous
	level := c.EscalationLevel
	count := c.AttachmentCount
	rec := remote.ComplaintRecord{
		ID:                 c.ID,
		ReferenceNumber:    c.ReferenceNumber,
		Title:              c.Title,
		Description:        c.Description,
		Category:           c.Category,
		Status:             DenormalizeStatus(c.Status),
		Priority:           DenormalizePriority(c.Priority),
		AssignedTo:         c.AssignedTo,
		AssignedDepartment: c.AssignedDepartment,
		IsAnonymous:        &anonymous,
		SubmittedBy:        c.SubmittedBy,
		SubmittedAt:        formatTime(c.SubmittedAt),
		CitizenName:        c.CitizenName,
		LastUpdatedAt:      formatOptionalTime(c.LastUpdatedAt),
		LastUpdatedBy:      c.LastUpdatedBy,
		Escalated:          c.Escalated,
		EscalationLevel:    &level,
		EscalationReason:   c.EscalationReason,
		EscalatedAt:        formatOptionalTime(c.EscalatedAt),
		Attachments:        append([]string{}, c.Attachments...),
		AttachmentCount:    &count,
		Notes:              make([]remote.NoteRecord, 0, len(c.Notes)),
		Replies:            make([]remote.ReplyRecord, 0, len(c.Replies)),
		StatusHistory:      make([]remote.StatusHistoryRecord, 0, len(c.StatusHistory)),
	}
	if c.User != nil {
		rec.User = &remote.UserRecord{ID: c.User.ID, Email: c.User.Email, Name: c.User.Name}
	}
	if c.AssignedOfficer != nil {
		o := OfficerRecord(*c.AssignedOfficer)
		rec.AssignedOfficer = &o
	}
	for _, n := range c.Notes {
		private := n.IsPrivate
		rec.Notes = append(rec.Notes, remote.NoteRecord{
			ID:        n.ID,
			Content:   n.Content,
			CreatedBy: n.CreatedBy,
			CreatedAt: formatTime(n.CreatedAt),
			IsPrivate: &private,
		})
	}
	for _, r := range c.Replies {
		admin := r.IsAdminReply
		rec.Replies = append(rec.Replies, remote.ReplyRecord{
			ID:           r.ID,
			Content:      r.Content,
			CreatedBy:    r.CreatedBy,
			AuthorName:   r.AuthorName,
			CreatedAt:    formatTime(r.CreatedAt),
			IsAdminReply: &admin,
		})
	}
	for _, h := range c.StatusHistory {
		rec.StatusHistory = append(rec.StatusHistory, remote.StatusHistoryRecord{
			ID:        h.ID,
			Status:    DenormalizeStatus(h.Status),
			ChangedAt: formatTime(h.ChangedAt),
			ChangedBy: h.ChangedBy,
			Notes:     h.Notes,
		})
	}
	if c.Feedback != nil {
		rating := c.Feedback.Rating
		rec.Feedback = &remote.FeedbackRecord{
			ID:               c.Feedback.ID,
			Content:          c.Feedback.Content,
			Rating:           &rating,
			CreatedAt:        formatTime(c.Feedback.CreatedAt),
			VisibleToOfficer: c.Feedback.VisibleToOfficer,
		}
	}
	return rec
}

// OfficerRecord renders an officer in wire form.
func OfficerRecord(o domain.Officer) remote.OfficerRecord {
	return remote.OfficerRecord{
		ID:           o.ID,
		Name:         o.Name,
		Email:        o.Email,
		Department:   o.Department,
		Availability: string(o.Availability),
	}
}
