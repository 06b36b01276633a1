package user_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"
	mock_user "go-hrms/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const actorID = "0f8e3c4a-7b2d-4f61-9a0e-5d1c2b3a4f5e"

func newRouter(t *testing.T) (*mock_user.MockService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock_user.NewMockService(ctrl)
	h := user.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, actorID)
		c.Next()
	})
	r.GET("/users", h.GetAll)
	r.PATCH("/users/:id/status", h.UpdateStatus)
	r.PUT("/users/me/password", h.ChangePassword)
	return svc, r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_GetAll(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, q response.PageQuery, f user.ListFilter) ([]user.UserResponse, int64, error) {
			assert.NotNil(t, f.IsActive)
			assert.False(t, *f.IsActive)
			return []user.UserResponse{{ID: "u-1", Email: "a@corp.id"}}, 1, nil
		})

	w := do(r, http.MethodGet, "/users?is_active=false", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@corp.id")

	w = do(r, http.MethodGet, "/users?is_active=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_UpdateStatus(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().SetStatus(gomock.Any(), actorID, actorID, false).Return(user.UserResponse{}, usererrors.ErrDeactivateSelf)
	svc.EXPECT().SetStatus(gomock.Any(), actorID, "u-2", false).Return(user.UserResponse{ID: "u-2"}, nil)

	w := do(r, http.MethodPatch, "/users/"+actorID+"/status", `{"is_active":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")

	w = do(r, http.MethodPatch, "/users/u-2/status", `{"is_active":false}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPatch, "/users/u-2/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ChangePassword(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().ChangePassword(gomock.Any(), actorID, user.ChangePasswordRequest{CurrentPassword: "old-secret-1", NewPassword: "new-secret-2"}).Return(nil)

	w := do(r, http.MethodPut, "/users/me/password", `{"current_password":"old-secret-1","new_password":"new-secret-2"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/users/me/password", `{"current_password":"old-secret-1","new_password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
