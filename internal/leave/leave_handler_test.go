package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveService struct {
	createFn  func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn  func(ctx context.Context, q response.PageQuery, f leave.ListFilter) ([]leave.LeaveResponse, int64, leave.LeaveStats, error)
	approveFn func(ctx context.Context, actorID, id, remarks string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, actorID, id, reason string) (leave.LeaveResponse, error)
	cancelFn  func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeLeaveService) Create(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, q response.PageQuery, filter leave.ListFilter) ([]leave.LeaveResponse, int64, leave.LeaveStats, error) {
	return f.getAllFn(ctx, q, filter)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
}
func (f *fakeLeaveService) GetApprovals(ctx context.Context, id string) ([]leave.ApprovalLogResponse, error) {
	return nil, nil
}
func (f *fakeLeaveService) Update(ctx context.Context, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return leave.LeaveResponse{}, nil
}
func (f *fakeLeaveService) Approve(ctx context.Context, actorID, id, remarks string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actorID, id, remarks)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actorID, id, reason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actorID, id, reason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actorID, id)
}
func (f *fakeLeaveService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func newLeaveRouter(svc leave.Service, employeeID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextEmployeeID, employeeID)
		c.Next()
	})
	h := leave.NewHandler(svc)
	r.POST("/leave-applications", h.Create)
	r.GET("/leave-applications", h.GetAll)
	r.GET("/leave-applications/:id", h.GetById)
	r.POST("/leave-applications/:id/approve", h.Approve)
	r.POST("/leave-applications/:id/reject", h.Reject)
	r.POST("/leave-applications/:id/cancel", h.Cancel)
	r.DELETE("/leave-applications/:id", h.Delete)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestLeaveHandler_Create(t *testing.T) {
	actorID := uuid.NewString()
	employeeID := uuid.NewString()
	leaveTypeID := uuid.NewString()

	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, actor string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, actorID, actor)
			if req.StartDate == "2026-03-04" {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			}
			return leave.LeaveResponse{ID: "lv-1", EmployeeID: req.EmployeeID, Status: leave.StatusPending, TotalDays: 3}, nil
		},
	}
	r := newLeaveRouter(svc, actorID)

	post := func(body map[string]any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-applications", bytes.NewReader(raw)))
		return w
	}

	t.Run("created", func(t *testing.T) {
		w := post(map[string]any{
			"employee_id":   employeeID,
			"leave_type_id": leaveTypeID,
			"start_date":    "2026-03-02",
			"end_date":      "2026-03-04",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, "Leave application submitted successfully", env.Message)
	})

	t.Run("missing leave type", func(t *testing.T) {
		w := post(map[string]any{"employee_id": employeeID, "start_date": "2026-03-02", "end_date": "2026-03-04"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, decodeEnvelope(t, w).Success)
	})

	t.Run("overlap maps to conflict", func(t *testing.T) {
		w := post(map[string]any{
			"employee_id":   employeeID,
			"leave_type_id": leaveTypeID,
			"start_date":    "2026-03-04",
			"end_date":      "2026-03-05",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_GetAllWithStats(t *testing.T) {
	svc := &fakeLeaveService{
		getAllFn: func(ctx context.Context, q response.PageQuery, f leave.ListFilter) ([]leave.LeaveResponse, int64, leave.LeaveStats, error) {
			assert.Equal(t, "PENDING", f.Status)
			assert.Equal(t, "emp-1", f.EmployeeID)
			assert.Equal(t, 2, q.Page)
			return []leave.LeaveResponse{{ID: "lv-1"}}, 11, leave.LeaveStats{Pending: 4, Approved: 7}, nil
		},
	}
	r := newLeaveRouter(svc, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-applications?page=2&page_size=10&status=PENDING&employee_id=emp-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 11, env.Meta.Total)
	assert.Contains(t, w.Body.String(), `"stats":{"pending":4,"approved":7,"rejected":0,"cancelled":0}`)
}

func TestLeaveHandler_Transitions(t *testing.T) {
	approver := uuid.NewString()
	svc := &fakeLeaveService{
		approveFn: func(ctx context.Context, actorID, id, remarks string) (leave.LeaveResponse, error) {
			assert.Equal(t, approver, actorID)
			if id == "done" {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			}
			return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
		},
		rejectFn: func(ctx context.Context, actorID, id, reason string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{ID: id, Status: leave.StatusRejected, RejectionReason: &reason}, nil
		},
		cancelFn: func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{ID: id, Status: leave.StatusCancelled}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			return leaveerrors.ErrInvalidStatusTransition
		},
	}
	r := newLeaveRouter(svc, approver)

	t.Run("approve without body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-applications/lv-1/approve", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusApproved)
	})

	t.Run("approve twice", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-applications/done/approve", strings.NewReader(`{"remarks":"again"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("reject requires reason", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-applications/lv-1/reject", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-applications/lv-1/reject", strings.NewReader(`{"rejection_reason":"busy"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rejection_reason":"busy"`)
	})

	t.Run("cancel", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-applications/lv-1/cancel", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete approved", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/leave-applications/lv-1", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-applications/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
