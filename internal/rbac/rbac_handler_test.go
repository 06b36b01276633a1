package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/domain"
	rbacerrors "go-hrms/internal/rbac/errors"
	"go-hrms/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/rbac/enforce", h.Enforce)
	r.GET("/roles/:id", h.GetRole)
	r.PUT("/roles/:id/permissions", h.UpdateRolePermissions)
	return r
}

func TestHandler_Enforce(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	router := newRouter(NewHandler(svc))

	t.Run("allowed", func(t *testing.T) {
		svc.EXPECT().
			Enforce(domain.EnforceRequest{EmployeeID: "emp-1", Module: "leave", Action: "approve"}).
			Return(true, nil)

		body, _ := json.Marshal(map[string]string{
			"employee_id": " emp-1 ",
			"module":      "leave",
			"action":      "approve",
		})
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Success)

		var resp domain.EnforceResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.True(t, resp.Allowed)
	})

	t.Run("missing module", func(t *testing.T) {
		body := []byte(`{"employee_id":"emp-1","action":"read"}`)
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetRoleNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	router := newRouter(NewHandler(svc))

	svc.EXPECT().GetRole(gomock.Any(), "missing").Return(domain.RoleResponse{}, rbacerrors.ErrRoleNotFound)

	req := httptest.NewRequest(http.MethodGet, "/roles/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHandler_UpdateRolePermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	router := newRouter(NewHandler(svc))

	permID := "5f1c8a52-8d4f-4b61-9b41-3f0a2f4c9e10"
	svc.EXPECT().
		UpdateRolePermissions(gomock.Any(), "role-1", domain.UpdateRolePermissionsRequest{PermissionIDs: []string{permID}}).
		Return(domain.RoleResponse{ID: "role-1", Name: "HR"}, nil)

	body := []byte(`{"permission_ids":["` + permID + `"]}`)
	req := httptest.NewRequest(http.MethodPut, "/roles/role-1/permissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
