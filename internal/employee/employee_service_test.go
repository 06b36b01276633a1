package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/response"

	employeeMock "go-hrms/internal/employee/mock"
	"go-hrms/internal/messaging/kafka"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"
	counterMock "go-hrms/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	counter   *counterMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	policy    *employeeMock.MockPolicyInvalidator
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)
	policy := employeeMock.NewMockPolicyInvalidator(ctrl)

	svc := employee.NewService(db, repo, counterRepo, outboxRepo, dbRedis, policy)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		policy:    policy,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// outboxMatcher checks the event type, request id and decoded payload.
type outboxMatcher struct {
	rid       string
	eventType string
}

func (m outboxMatcher) Matches(x any) bool {
	e, ok := x.(kafka.OutboxEvent)
	if !ok || e.RequestID != m.rid || e.EventType != m.eventType || e.Topic != events.EmployeeLifecycleTopic {
		return false
	}
	var payload events.EmployeeCreatedEvent
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return false
	}
	return payload.RequestID == m.rid && payload.EmployeeID == e.AggregateID
}

func (m outboxMatcher) String() string {
	return fmt.Sprintf("outbox event %s with request id %s", m.eventType, m.rid)
}

func notFound() (*employee.Employee, error) { return nil, gorm.ErrRecordNotFound }

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success - generates code and queues outbox event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)
		deptID := uuid.NewString()
		req := employee.CreateEmployeeRequest{
			FullName:     "Andi Saputra",
			Email:        "Andi@Example.com",
			DepartmentID: deptID,
			JoiningDate:  "2025-01-06",
			BasicSalary:  decimal.NewFromInt(9000000),
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ReferenceExists(ctx, employee.RefDepartments, deptID).Return(true, nil)
		deps.repo.EXPECT().FindByEmail(ctx, "andi@example.com").Return(notFound())
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, counter.TypeEmployeeCode).Return(int64(123), nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-000123", e.Code)
				assert.Equal(t, employee.StatusActive, e.Status)
				assert.Equal(t, "andi@example.com", e.Email)
				assert.True(t, e.BasicSalary.Equal(decimal.NewFromInt(9000000)))
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), outboxMatcher{rid: rid, eventType: events.EmployeeCreated}).
			Return(nil)
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.Code)
		assert.Equal(t, "2025-01-06", resp.JoiningDate)
		assert.Equal(t, deptID, resp.DepartmentID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("role assignment invalidates policy", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()
		roleID := uuid.NewString()
		req := employee.CreateEmployeeRequest{
			Code:        "emp-900",
			FullName:    "Budi",
			Email:       "budi@example.com",
			RoleID:      roleID,
			JoiningDate: "2025-02-01",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ReferenceExists(ctx, employee.RefRoles, roleID).Return(true, nil)
		deps.repo.EXPECT().FindByEmail(ctx, "budi@example.com").Return(notFound())
		deps.repo.EXPECT().FindByCode(ctx, "EMP-900").Return(notFound())
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)
		deps.policy.EXPECT().InvalidatePolicy().Times(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-900", resp.Code)
	})

	t.Run("unknown designation -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()
		designationID := uuid.NewString()
		req := employee.CreateEmployeeRequest{
			FullName: "Caca", Email: "caca@example.com", DesignationID: designationID, JoiningDate: "2025-01-01",
		}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ReferenceExists(ctx, employee.RefDesignations, designationID).Return(false, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrDesignationNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmail(ctx, "dup@example.com").Return(&employee.Employee{ID: uuid.New()}, nil)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Dup", Email: "dup@example.com", JoiningDate: "2025-01-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("unique violation from database maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmail(ctx, gomock.Any()).Return(notFound())
		deps.repo.EXPECT().FindByCode(ctx, "EMP-100").Return(notFound())
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_code"})

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Code: "EMP-100", FullName: "Race", Email: "race@example.com", JoiningDate: "2025-01-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeCodeAlreadyExists)
	})

	t.Run("validation errors happen before the transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{FullName: "X", Email: "x@example.com", JoiningDate: "06/01/2025"})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoiningDate)

		_, err = deps.service.Create(ctx, employee.CreateEmployeeRequest{FullName: "X", Email: "x@example.com", JoiningDate: "2025-01-06", BasicSalary: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidBasicSalary)

		_, err = deps.service.Create(ctx, employee.CreateEmployeeRequest{FullName: "X", Email: "x@example.com", JoiningDate: "2025-01-06", Status: "retired"})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidStatus)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	q := response.PageQuery{Page: 1, PageSize: 10}
	f := employee.ListFilter{Status: employee.StatusActive}

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindAll(ctx, q, f).
			Return([]employee.Employee{
				{ID: uuid.New(), FullName: "Andi", DepartmentName: "Engineering"},
				{ID: uuid.New(), FullName: "Budi"},
			}, int64(12), nil)

		resp, total, err := deps.service.GetAll(ctx, q, f)

		assert.NoError(t, err)
		assert.EqualValues(t, 12, total)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Engineering", resp[0].DepartmentName)
	})

	t.Run("error repository", func(t *testing.T) {
		deps.repo.EXPECT().FindAll(ctx, q, f).Return(nil, int64(0), errors.New("db error"))

		resp, _, err := deps.service.GetAll(ctx, q, f)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit reads from redis", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []employee.EmployeeOption{{ID: uuid.NewString(), Code: "EMP-000001", FullName: "Caca"}}
		payload, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(payload))

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Caca", resp[0].FullName)
	})

	t.Run("cache miss loads from db and stores in redis", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.EXPECT().FindOptions(gomock.Any()).
			Return([]employee.Employee{{ID: id, Code: "EMP-000002", FullName: "Deni"}}, nil)

		expected, _ := json.Marshal([]employee.EmployeeOption{{ID: id.String(), Code: "EMP-000002", FullName: "Deni"}})
		deps.redismock.ExpectSet(employee.EmployeeOptionsKey, expected, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Deni", resp[0].FullName)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error is returned", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.EXPECT().FindOptions(gomock.Any()).Return(nil, errors.New("database connection lost"))

		resp, err := deps.service.GetOptions(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "database connection lost")
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(&employee.Employee{ID: targetID, FullName: "HR", JoiningDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}, nil)

		resp, err := deps.service.GetByID(ctx, targetID.String())

		assert.NoError(t, err)
		assert.Equal(t, targetID.String(), resp.ID)
		assert.Equal(t, "2024-05-01", resp.JoiningDate)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(notFound())

		_, err := deps.service.GetByID(ctx, targetID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success keeps existing code and reloads policy on role change", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		newRole := uuid.NewString()
		req := employee.UpdateEmployeeRequest{
			FullName: "HR Updated", Email: "hr@example.com", RoleID: newRole, JoiningDate: "2024-01-01", Status: "inactive",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).
			Return(&employee.Employee{ID: targetID, Code: "EMP-000007", FullName: "HR", Status: employee.StatusActive}, nil)
		deps.repo.EXPECT().ReferenceExists(ctx, employee.RefRoles, newRole).Return(true, nil)
		deps.repo.EXPECT().FindByEmail(ctx, "hr@example.com").Return(&employee.Employee{ID: targetID}, nil)
		deps.repo.EXPECT().FindByCode(ctx, "EMP-000007").Return(&employee.Employee{ID: targetID}, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-000007", e.Code)
				assert.Equal(t, employee.StatusInactive, e.Status)
				return nil
			})
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)
		deps.policy.EXPECT().InvalidatePolicy()

		resp, err := deps.service.Update(ctx, targetID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, "HR Updated", resp.FullName)
		assert.Equal(t, newRole, resp.RoleID)
	})

	t.Run("error - employee not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(notFound())

		_, err := deps.service.Update(ctx, targetID.String(), employee.UpdateEmployeeRequest{
			FullName: "X", Email: "x@example.com", JoiningDate: "2024-01-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, targetID).Return(nil)
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)
		deps.policy.EXPECT().InvalidatePolicy()

		assert.NoError(t, deps.service.Delete(ctx, targetID))
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, targetID).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, targetID)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
