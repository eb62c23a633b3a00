package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRemoteErrorMapsUpstreamStatus(t *testing.T) {
	err := NewRemoteError("update status", http.StatusNotFound, "Complaint not found")

	domainErr := ToDomainError(err)
	assert.Equal(t, CodeRemote, domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "update status failed", domainErr.Message)
	assert.Equal(t, http.StatusNotFound, UpstreamStatus(err))
}

func TestNewRemoteErrorHidesServerFailures(t *testing.T) {
	err := NewRemoteError("assign officer", http.StatusInternalServerError, "boom")

	assert.Equal(t, http.StatusBadGateway, ToDomainError(err).HTTPStatus)
	assert.NotContains(t, ToDomainError(err).Message, "boom")
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	domainErr := ToDomainError(errors.New("unexpected"))

	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Zero(t, UpstreamStatus(domainErr))
}

func TestHasCode(t *testing.T) {
	err := NewPreconditionError("email required")

	assert.True(t, HasCode(err, CodePrecondition))
	assert.False(t, HasCode(err, CodeTransport))
	assert.Nil(t, ToDomainError(nil))
}
