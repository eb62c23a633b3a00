package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/resolveit/complaint-sync/internal/domain"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

// ListOfficers fetches the approved officer directory.
func (c *Client) ListOfficers(ctx context.Context) ([]OfficerRecord, error) {
	const op = "list officers"
	body, err := c.do(ctx, request{operation: op, method: http.MethodGet, path: "/officers"})
	if err != nil {
		return nil, err
	}
	return decodeList[OfficerRecord](op, body)
}

// ListPendingOfficers fetches registrations awaiting approval.
func (c *Client) ListPendingOfficers(ctx context.Context) ([]PendingOfficerRecord, error) {
	const op = "list pending officers"
	body, err := c.do(ctx, request{operation: op, method: http.MethodGet, path: "/officers/pending"})
	if err != nil {
		return nil, err
	}
	return decodeList[PendingOfficerRecord](op, body)
}

// ApproveOfficer promotes a pending registration.
func (c *Client) ApproveOfficer(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{operation: "approve officer", method: http.MethodPost, path: fmt.Sprintf("/admin/approve/%d", id)})
	return err
}

// RejectOfficer discards a pending registration.
func (c *Client) RejectOfficer(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{operation: "reject officer", method: http.MethodPost, path: fmt.Sprintf("/admin/reject/%d", id)})
	return err
}

// RegisterOfficer submits a self-service officer registration as multipart.
func (c *Client) RegisterOfficer(ctx context.Context, reg domain.OfficerRegistration) error {
	const op = "register officer"
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"name", reg.Name},
		{"email", reg.Email},
		{"password", reg.Password},
		{"department", reg.Department},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encode %s: %w", op, err))
		}
	}
	if reg.Certificate != nil {
		cert := File{Name: reg.Certificate.FileName, ContentType: reg.Certificate.ContentType, Data: reg.Certificate.Data}
		if err := writeFilePart(mw, "certificate", cert); err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encode %s: %w", op, err))
		}
	}
	if err := mw.Close(); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("encode %s: %w", op, err))
	}
	_, err := c.do(ctx, request{
		operation:   op,
		method:      http.MethodPost,
		path:        "/officers/register",
		body:        bytes.NewReader(buf.Bytes()),
		contentType: mw.FormDataContentType(),
		public:      true,
	})
	return err
}
