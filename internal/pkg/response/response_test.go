package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jsonshare/jsonshare-backend/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSuccessEnvelope(t *testing.T) {
	w, resp := record(func(c *gin.Context) {
		Success(c, gin.H{"x": 1})
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, resp.Error)
}

func TestErrorEnvelopeCodeMirrorsStatus(t *testing.T) {
	w, resp := record(func(c *gin.Context) {
		NotFound(c, "no such thing")
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "no such thing", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestErrorWithCode(t *testing.T) {
	w, resp := record(func(c *gin.Context) {
		ErrorWithCode(c, apperrors.ErrFileExpired)
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "This shared file has expired", resp.Error)
}

func TestHandleErrorMapsAppError(t *testing.T) {
	w, resp := record(func(c *gin.Context) {
		HandleError(c, apperrors.New(apperrors.ErrShareForbidden))
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestForbiddenHelper(t *testing.T) {
	w, _ := record(func(c *gin.Context) {
		Forbidden(c, "nope")
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
