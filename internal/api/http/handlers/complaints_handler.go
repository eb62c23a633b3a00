package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/api/dto"
	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/normalize"
	"github.com/resolveit/complaint-sync/internal/service"
	"github.com/resolveit/complaint-sync/internal/view"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

const maxUploads = 10

// ComplaintsHandler serves a session's complaint views and operations.
type ComplaintsHandler struct {
	sessions *service.SessionService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(sessions *service.SessionService) *ComplaintsHandler {
	return &ComplaintsHandler{sessions: sessions}
}

// List GET /complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	filter := view.Filter{Query: c.Query("q")}
	if raw := c.Query("status"); raw != "" {
		filter.Status = normalize.Status(raw)
	}
	if raw := c.Query("priority"); raw != "" {
		filter.Priority = normalize.Priority(raw)
	}

	all := session.Store.Complaints()
	resp := dto.ComplaintListResponse{
		Complaints: view.ProjectAll(filter.Apply(all), session.Identity),
		Stats:      view.ComputeStats(all),
	}
	if loaded, syncedAt := session.Store.Loaded(); loaded {
		resp.Loaded = true
		resp.SyncedAt = &syncedAt
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	complaint, ok := session.Store.Complaint(id)
	if !ok {
		return apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.ComplaintDetailResponse{
		Complaint: view.Project(complaint, session.Identity),
		Timeline:  view.Timeline(complaint, session.Identity),
	}})
}

// Refresh POST /complaints/refresh.
func (h *ComplaintsHandler) Refresh(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := session.Store.FetchAll(c.UserContext()); err != nil {
		return err
	}
	return h.List(c)
}

// Submit POST /complaints. Accepts JSON or multipart with "files" parts.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	uploads, err := readUploads(c)
	if err != nil {
		return err
	}

	details := domain.SubmitDetails{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IsAnonymous: req.IsAnonymous,
	}
	if req.Priority != "" {
		details.Priority = normalize.Priority(req.Priority)
	}
	created, err := session.Store.Submit(c.UserContext(), details, uploads)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": view.Project(created, session.Identity)})
}

func readUploads(c *fiber.Ctx) ([]domain.Upload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.NewValidationError("invalid multipart body", nil)
	}
	headers := form.File["files"]
	if len(headers) > maxUploads {
		return nil, apperrors.NewValidationError("too many files", map[string]any{"max": maxUploads})
	}
	uploads := make([]domain.Upload, 0, len(headers))
	for _, fh := range headers {
		upload, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, apperrors.NewValidationError("unreadable file", map[string]any{"file": fh.Filename})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, apperrors.NewValidationError("unreadable file", map[string]any{"file": fh.Filename})
	}
	return domain.Upload{FileName: fh.Filename, ContentType: fh.Header.Get(fiber.HeaderContentType), Data: data}, nil
}

// UpdateStatus POST /complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	session, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	updated, err := session.Store.UpdateStatus(c.UserContext(), id, normalize.Status(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Project(updated, session.Identity)})
}

// UpdatePriority POST /complaints/:id/priority.
func (h *ComplaintsHandler) UpdatePriority(c *fiber.Ctx) error {
	session, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req dto.PriorityRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Priority) == "" {
		return apperrors.NewValidationError("priority required", nil)
	}
	updated, err := session.Store.UpdatePriority(c.UserContext(), id, normalize.Priority(req.Priority))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Project(updated, session.Identity)})
}

// Assign POST /complaints/:id/assign.
func (h *ComplaintsHandler) Assign(c *fiber.Ctx) error {
	session, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := session.Store.Assign(c.UserContext(), id, req.OfficerEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Project(updated, session.Identity)})
}

// Escalate POST /complaints/:id/escalate.
func (h *ComplaintsHandler) Escalate(c *fiber.Ctx) error {
	session, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req dto.EscalateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := session.Store.Escalate(c.UserContext(), id, req.Level, req.Reason, "")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Project(updated, session.Identity)})
}

// AddNote POST /complaints/:id/notes.
func (h *ComplaintsHandler) AddNote(c *fiber.Ctx) error {
	session, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}
	note, err := session.Store.AddNote(c.UserContext(), id, req.Content, req.IsPrivate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": note})
}

// AddReply POST /complaints/:id/replies.
func (h *ComplaintsHandler) AddReply(c *fiber.Ctx) error {
	session, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}
	reply, err := session.Store.AddReply(c.UserContext(), id, req.Content, session.Identity.IsPrivileged())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": view.ReplyView{
		ID:           reply.ID,
		Content:      reply.Content,
		AuthorName:   reply.AuthorName,
		Label:        view.ReplyLabel(reply),
		CreatedAt:    reply.CreatedAt,
		IsAdminReply: reply.IsAdminReply,
	}})
}

func (h *ComplaintsHandler) target(c *fiber.Ctx) (*service.Session, int64, error) {
	session, err := currentSession(c, h.sessions)
	if err != nil {
		return nil, 0, err
	}
	id, err := complaintID(c)
	if err != nil {
		return nil, 0, err
	}
	return session, id, nil
}
