package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/observability"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", WithMetrics(observability.NewMetrics())).WithToken("tok-123")
}

func TestListCitizenComplaintsSendsEmailAndBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/complaints/user", r.URL.Path)
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(observability.RequestIDHeader))
		_, _ = io.WriteString(w, `[{"id":7,"status":"IN_PROGRESS"}]`)
	})

	list, err := client.ListCitizenComplaints(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)
	assert.Equal(t, "IN_PROGRESS", list[0].Status)
}

func TestListComplaintsTreatsEmptyBodyAsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	list, err := client.ListComplaints(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListComplaintsRejectsNonArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":1}`)
	})

	_, err := client.ListComplaints(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeMalformed))
}

func TestNonSuccessStatusMapsToRemoteError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "Access denied")
	})

	_, err := client.UpdateStatus(context.Background(), 3, "RESOLVED", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeRemote))
	assert.Equal(t, http.StatusForbidden, apperrors.UpstreamStatus(err))
}

func TestUnreachableServiceMapsToTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL)

	_, err := client.ListOfficers(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTransport))
}

func TestUpdateStatusSendsDenormalizedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/complaints/42/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "UNDER_REVIEW", body["status"])
		assert.Equal(t, "officer@city.gov", body["requestedBy"])
		_, _ = io.WriteString(w, `{"id":42,"status":"UNDER_REVIEW"}`)
	})

	rec, err := client.UpdateStatus(context.Background(), 42, "UNDER_REVIEW", "officer@city.gov")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "UNDER_REVIEW", rec.Status)
}

func TestAssignOfficerPlainTextAckReturnsNilRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/complaints/9/assign", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "Officer assigned successfully")
	})

	rec, err := client.AssignOfficer(context.Background(), 9, "officer@city.gov")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSubmitComplaintWithFilesUsesMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/complaints/submit-with-files", r.URL.Path)
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		dataFiles := r.MultipartForm.File["data"]
		require.Len(t, dataFiles, 1)
		assert.Equal(t, "application/json", dataFiles[0].Header.Get("Content-Type"))
		f, err := dataFiles[0].Open()
		require.NoError(t, err)
		var meta SubmitRequest
		require.NoError(t, json.NewDecoder(f).Decode(&meta))
		assert.Equal(t, "Broken light", meta.Title)

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))
		assert.Equal(t, "application/octet-stream", files[1].Header.Get("Content-Type"))

		_, _ = io.WriteString(w, `{"id":88,"title":"Broken light"}`)
	})

	rec, err := client.SubmitComplaint(context.Background(), "jane@example.com",
		SubmitRequest{Title: "Broken light", Description: "out", Category: "Lighting"},
		[]File{{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}, {Name: "b.bin", Data: []byte("bin")}})
	require.NoError(t, err)
	assert.Equal(t, int64(88), rec.ID)
}

func TestSubmitComplaintWithoutFilesUsesJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/complaints/submit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasPriority := body["priority"]
		assert.False(t, hasPriority)
		_, _ = io.WriteString(w, `{"id":501}`)
	})

	rec, err := client.SubmitComplaint(context.Background(), "jane@example.com", SubmitRequest{Title: "Pothole"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(501), rec.ID)
}

func TestSubmitComplaintWithoutIDIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"title":"x"}`)
	})

	_, err := client.SubmitComplaint(context.Background(), "jane@example.com", SubmitRequest{Title: "x"}, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeMalformed))
}

func TestLoginIsPublic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"token":"t","id":1,"email":"a@b.c","name":"A","role":"ROLE_ADMIN"}`)
	})

	rec, err := client.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", rec.Role)
	assert.Equal(t, "t", rec.Token)
}

func TestRegisterOfficerSendsCertificate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/officers/register", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Roads", r.FormValue("department"))
		require.Len(t, r.MultipartForm.File["certificate"], 1)
		_, _ = io.WriteString(w, "Registration submitted")
	})

	err := client.RegisterOfficer(context.Background(), domain.OfficerRegistration{
		Name:        "Olu",
		Email:       "olu@city.gov",
		Password:    "pw",
		Department:  "Roads",
		Certificate: &domain.Upload{FileName: "cert.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)
}
