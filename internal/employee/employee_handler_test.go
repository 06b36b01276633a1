package employee_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	employeeMock "go-hrms/internal/employee/mock"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, *employeeMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	r := gin.New()
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.GET("/employees/options", h.GetOptions)
	r.GET("/employees/:id", h.GetById)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	return r, svc
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupRouter(t)
		employeeID := uuid.NewString()

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.FullName)
				assert.Equal(t, "7500000.50", req.BasicSalary.StringFixed(2))
				return employee.EmployeeResponse{ID: employeeID, Code: "EMP-000001", FullName: req.FullName}, nil
			})

		body := `{"full_name":"John Doe","email":"john@example.com","joining_date":"2025-01-06","basic_salary":"7500000.50"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, "Employee created successfully", env.Message)
	})

	t.Run("validation error", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(`{"email":"not-an-email"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
	})

	t.Run("conflict", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists)

		body := `{"full_name":"John","email":"john@example.com","joining_date":"2025-01-06"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Employee with the same email already exists", decode(t, w).Message)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	r, svc := setupRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), response.PageQuery{Page: 2, PageSize: 5, Search: "and"}, employee.ListFilter{Status: "ACTIVE"}).
		Return([]employee.EmployeeResponse{{ID: "e-1", FullName: "Andi"}}, int64(6), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?page=2&page_size=5&search=and&status=ACTIVE", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 6, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
}

func TestEmployeeHandler_GetByIdNotFound(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().GetByID(gomock.Any(), "missing").Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployeeHandler_Delete(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().Delete(gomock.Any(), "e-1").Return(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/e-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Employee deleted successfully", decode(t, w).Message)
}
