package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
	payrollMock "go-hrms/internal/payroll/mock"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

func newRouter(t *testing.T) (*gin.Engine, *payrollMock.MockService) {
	gin.SetMode(gin.TestMode)
	svc := payrollMock.NewMockService(gomock.NewController(t))
	r := gin.New()
	h := payroll.NewHandler(svc)
	withActor := func(c *gin.Context) {
		c.Set(middleware.ContextEmployeeID, "4a0e1c52-9a8f-4a57-8d4f-0f0b7f3f2b11")
		c.Next()
	}
	r.POST("/payroll-processing/process", withActor, h.Process)
	r.DELETE("/payroll-processing/:id", h.Delete)
	r.GET("/salary-slips", h.GetSlips)
	r.GET("/salary-slips/:id/download", h.DownloadSlip)
	return r, svc
}

func TestHandler_Process(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().
		Process(gomock.Any(), "4a0e1c52-9a8f-4a57-8d4f-0f0b7f3f2b11", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req payroll.ProcessPayrollRequest) (payroll.ProcessResult, error) {
			if req.Month == 2 {
				return payroll.ProcessResult{}, payrollerrors.ErrNoEligibleEmployees.WithDetails([]payroll.SkippedEmployee{
					{EmployeeID: "e-1", Reason: "no salary structure for the period"},
				})
			}
			return payroll.ProcessResult{
				Payroll: payroll.PayrollResponse{
					ID:             "run-1",
					Status:         payroll.StatusProcessed,
					TotalNetSalary: decimal.RequireFromString("10100000.25"),
				},
				Slips:   2,
				Skipped: []payroll.SkippedEmployee{},
			}, nil
		}).
		Times(2)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll-processing/process", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"month":3,"year":2026}`)
	require.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"total_net_salary":"10100000.25"`)

	w = post(`{"month":2,"year":2026}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no salary structure for the period")

	w = post(`{"month":13,"year":2026}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(`{"month":3,"year":2026,"employee_ids":["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().Delete(gomock.Any(), "draft").Return(nil)
	svc.EXPECT().Delete(gomock.Any(), "paid").Return(payrollerrors.ErrDeletePaid)
	svc.EXPECT().Delete(gomock.Any(), "missing").Return(payrollerrors.ErrPayrollNotFound)

	tests := []struct {
		id     string
		status int
	}{
		{"draft", http.StatusOK},
		{"paid", http.StatusBadRequest},
		{"missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/payroll-processing/"+tt.id, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandler_GetSlips(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().
		GetSlips(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ response.PageQuery, f payroll.SlipFilter) ([]payroll.SlipResponse, int64, error) {
			assert.Equal(t, 3, f.Month)
			assert.Equal(t, 2026, f.Year)
			assert.Equal(t, "run-1", f.PayrollID)
			return []payroll.SlipResponse{{ID: "slip-1"}}, 1, nil
		})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salary-slips?month=3&year=2026&payroll_id=run-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, string(env.Data), `"slip-1"`)
	assert.NotEmpty(t, env.Meta)
}

func TestHandler_DownloadSlip(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().DownloadSlip(gomock.Any(), "slip-1").Return(payroll.Payslip{
		FileName:    "payslip-EMP-000001-2026-03.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4"),
	}, nil)
	svc.EXPECT().DownloadSlip(gomock.Any(), "missing").Return(payroll.Payslip{}, payrollerrors.ErrSlipNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salary-slips/slip-1/download", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-EMP-000001-2026-03.pdf")
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salary-slips/missing/download", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
