package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

// ListComplaints fetches every complaint (admin scope).
func (c *Client) ListComplaints(ctx context.Context) ([]ComplaintRecord, error) {
	const op = "list complaints"
	body, err := c.do(ctx, request{operation: op, method: http.MethodGet, path: "/complaints"})
	if err != nil {
		return nil, err
	}
	return decodeList[ComplaintRecord](op, body)
}

// ListCitizenComplaints fetches complaints submitted by email.
func (c *Client) ListCitizenComplaints(ctx context.Context, email string) ([]ComplaintRecord, error) {
	const op = "list citizen complaints"
	body, err := c.do(ctx, request{
		operation: op,
		method:    http.MethodGet,
		path:      "/complaints/user",
		query:     url.Values{"email": {email}},
	})
	if err != nil {
		return nil, err
	}
	return decodeList[ComplaintRecord](op, body)
}

// ListOfficerComplaints fetches complaints assigned to email.
func (c *Client) ListOfficerComplaints(ctx context.Context, email string) ([]ComplaintRecord, error) {
	const op = "list officer complaints"
	body, err := c.do(ctx, request{
		operation: op,
		method:    http.MethodGet,
		path:      "/officer/complaints",
		query:     url.Values{"email": {email}},
	})
	if err != nil {
		return nil, err
	}
	return decodeList[ComplaintRecord](op, body)
}

// SubmitComplaint creates a complaint on behalf of email. With files the body
// is multipart: a JSON "data" part followed by one "files" part per upload.
func (c *Client) SubmitComplaint(ctx context.Context, email string, in SubmitRequest, files []File) (ComplaintRecord, error) {
	const op = "submit complaint"
	query := url.Values{"email": {email}}

	var r request
	if len(files) == 0 {
		var err error
		r, err = jsonRequest(op, http.MethodPost, "/complaints/submit", in)
		if err != nil {
			return ComplaintRecord{}, err
		}
	} else {
		payload, contentType, err := submitMultipart(in, files)
		if err != nil {
			return ComplaintRecord{}, apperrors.NewInternalError(fmt.Errorf("encode %s: %w", op, err))
		}
		r = request{
			operation:   op,
			method:      http.MethodPost,
			path:        "/complaints/submit-with-files",
			body:        bytes.NewReader(payload),
			contentType: contentType,
		}
	}
	r.query = query

	body, err := c.do(ctx, r)
	if err != nil {
		return ComplaintRecord{}, err
	}
	rec, err := decode[ComplaintRecord](op, body)
	if err != nil {
		return ComplaintRecord{}, err
	}
	if rec.ID <= 0 {
		return ComplaintRecord{}, apperrors.NewMalformedResponse(op, fmt.Errorf("created record has no id"))
	}
	return rec, nil
}

func submitMultipart(in SubmitRequest, files []File) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	meta, err := json.Marshal(in)
	if err != nil {
		return nil, "", err
	}
	dataHeader := make(textproto.MIMEHeader)
	dataHeader.Set("Content-Disposition", `form-data; name="data"; filename="blob"`)
	dataHeader.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(dataHeader)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(meta); err != nil {
		return nil, "", err
	}

	for _, f := range files {
		if err := writeFilePart(mw, "files", f); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

func writeFilePart(mw *multipart.Writer, field string, f File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}

// UpdateStatus writes an UPPER_SNAKE status. The returned record is nil when
// the service acknowledged without a body.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status, requestedBy string) (*ComplaintRecord, error) {
	return c.mutate(ctx, "update status", fmt.Sprintf("/complaints/%d/status", id),
		statusUpdateRequest{Status: status, RequestedBy: requestedBy})
}

// UpdatePriority writes an UPPER priority.
func (c *Client) UpdatePriority(ctx context.Context, id int64, priority string) (*ComplaintRecord, error) {
	return c.mutate(ctx, "update priority", fmt.Sprintf("/complaints/%d/priority", id),
		priorityUpdateRequest{Priority: priority})
}

// AssignOfficer assigns the complaint to officerEmail.
func (c *Client) AssignOfficer(ctx context.Context, id int64, officerEmail string) (*ComplaintRecord, error) {
	return c.mutate(ctx, "assign officer", fmt.Sprintf("/admin/complaints/%d/assign", id),
		assignRequest{OfficerEmail: officerEmail})
}

// Escalate raises the complaint's handling level.
func (c *Client) Escalate(ctx context.Context, id int64, level int, reason, requestedBy string) (*ComplaintRecord, error) {
	return c.mutate(ctx, "escalate complaint", fmt.Sprintf("/complaints/%d/escalate", id),
		escalateRequest{Level: level, Reason: reason, RequestedBy: requestedBy})
}

func (c *Client) mutate(ctx context.Context, op, path string, payload any) (*ComplaintRecord, error) {
	r, err := jsonRequest(op, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return decodeOptionalRecord(body), nil
}

// AddNote creates a note and returns the server's copy.
func (c *Client) AddNote(ctx context.Context, id int64, content string, isPrivate bool) (NoteRecord, error) {
	const op = "add note"
	r, err := jsonRequest(op, http.MethodPost, fmt.Sprintf("/complaints/%d/notes", id),
		noteRequest{Content: content, IsPrivate: isPrivate})
	if err != nil {
		return NoteRecord{}, err
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return NoteRecord{}, err
	}
	return decode[NoteRecord](op, body)
}

// AddReply creates a reply and returns the server's copy.
func (c *Client) AddReply(ctx context.Context, id int64, content string, isAdminReply bool) (ReplyRecord, error) {
	const op = "add reply"
	r, err := jsonRequest(op, http.MethodPost, fmt.Sprintf("/complaints/%d/replies", id),
		replyRequest{Content: content, IsAdminReply: isAdminReply})
	if err != nil {
		return ReplyRecord{}, err
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return ReplyRecord{}, err
	}
	return decode[ReplyRecord](op, body)
}

// AnalyticsOverview fetches the admin aggregate.
func (c *Client) AnalyticsOverview(ctx context.Context) (AnalyticsRecord, error) {
	const op = "analytics overview"
	body, err := c.do(ctx, request{operation: op, method: http.MethodGet, path: "/admin/analytics/overview"})
	if err != nil {
		return AnalyticsRecord{}, err
	}
	return decode[AnalyticsRecord](op, body)
}
