package errors_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
)

func abortWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	apperrors.Abort(c, err)
	return w
}

func TestAbort_SentinelKeepsItsStatus(t *testing.T) {
	w := abortWith(apperrors.ErrPaymentTimeout)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "Payment confirmation timed out")
}

func TestAbort_WrappedSentinelKeepsItsStatus(t *testing.T) {
	wrapped := apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("row missing"))
	w := abortWith(wrapped)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An app error buried deeper in a plain fmt chain still maps by status.
	rewrapped := fmt.Errorf("looking up order: %w", apperrors.ErrForbidden)
	w = abortWith(rewrapped)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")
}

func TestAbort_UnknownErrorIsOpaque500(t *testing.T) {
	w := abortWith(fmt.Errorf("dsn password leaked in message"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestWrap_DoesNotMutateSentinel(t *testing.T) {
	wrapped := apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("disk full"))

	assert.ErrorIs(t, wrapped, apperrors.ErrInternalServer)
	assert.Nil(t, apperrors.ErrInternalServer.Err)
	assert.NotNil(t, wrapped.Err)
}
