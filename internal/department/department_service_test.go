package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/department"
	departmenterrors "go-hrms/internal/department/errors"
	departmentMock "go-hrms/internal/department/mock"
	"go-hrms/internal/shared/response"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const optionsKey = "departments:options"

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(db, repo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
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

func TestDepartmentService_GetOptions(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("cache hit reads from redis", func(t *testing.T) {
		cached := []department.DepartmentOption{
			{ID: "dep-1", Code: "HR", Name: "Human Resources"},
			{ID: "dep-2", Code: "IT", Name: "Information Technology"},
		}
		payload, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(optionsKey).SetVal(string(payload))

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "HR", resp[0].Code)
	})

	t.Run("cache miss loads from db and stores in redis", func(t *testing.T) {
		deps.redismock.ExpectGet(optionsKey).RedisNil()

		depts := []department.Department{{ID: uuid.New(), Code: "FIN", Name: "Finance", IsActive: true}}
		deps.repo.EXPECT().FindActive(ctx).Return(depts, nil).Times(1)

		payload, _ := json.Marshal([]department.DepartmentOption{{ID: depts[0].ID.String(), Code: "FIN", Name: "Finance"}})
		deps.redismock.ExpectSet(optionsKey, payload, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Finance", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error is returned", func(t *testing.T) {
		deps.redismock.ExpectGet(optionsKey).RedisNil()
		deps.repo.EXPECT().FindActive(ctx).Return(nil, errors.New("db connection error"))

		resp, err := deps.service.GetOptions(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		req := department.CreateDepartmentRequest{Code: "hr", Name: "Human Resources"}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByCode(ctx, "HR").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().FindByName(ctx, "Human Resources").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, "HR", d.Code)
				assert.True(t, d.IsActive)
				return nil
			})
		deps.redismock.ExpectDel(optionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "HR", resp.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate code -> conflict and rollback", func(t *testing.T) {
		req := department.CreateDepartmentRequest{Code: "HR", Name: "Other"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByCode(ctx, "HR").Return(&department.Department{ID: uuid.New(), Code: "HR"}, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentCodeExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		req := department.CreateDepartmentRequest{Code: "OPS", Name: "Operations"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByCode(ctx, "OPS").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().FindByName(ctx, "Operations").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db error"))

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
	})
}

func TestDepartmentService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	q := response.PageQuery{Page: 2, PageSize: 1, Search: "fin"}

	deps.repo.EXPECT().
		FindAll(ctx, q).
		Return([]department.Department{{ID: uuid.New(), Name: "Finance"}}, int64(3), nil)

	resp, total, err := deps.service.GetAll(ctx, q)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, resp, 1)
}

func TestDepartmentService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	targetID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, targetID).
			Return(&department.Department{ID: uuid.MustParse(targetID), Name: "HR"}, nil).
			Times(1)

		resp, err := deps.service.GetByID(ctx, targetID)

		assert.NoError(t, err)
		assert.Equal(t, targetID, resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.GetByID(ctx, targetID)

		assert.Empty(t, resp.ID)
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success keeps own code", func(t *testing.T) {
		req := department.UpdateDepartmentRequest{Code: "HR", Name: "People"}
		existing := &department.Department{ID: targetID, Code: "HR", Name: "Human Resources"}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(existing, nil)
		deps.repo.EXPECT().FindByCode(ctx, "HR").Return(existing, nil)
		deps.repo.EXPECT().FindByName(ctx, "People").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, "People", d.Name)
				return nil
			})
		deps.redismock.ExpectDel(optionsKey).SetVal(1)

		resp, err := deps.service.Update(ctx, targetID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, "People", resp.Name)
	})

	t.Run("name taken by another department", func(t *testing.T) {
		req := department.UpdateDepartmentRequest{Code: "HR", Name: "Finance"}
		existing := &department.Department{ID: targetID, Code: "HR", Name: "Human Resources"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(existing, nil)
		deps.repo.EXPECT().FindByCode(ctx, "HR").Return(existing, nil)
		deps.repo.EXPECT().FindByName(ctx, "Finance").Return(&department.Department{ID: uuid.New(), Name: "Finance"}, nil)

		_, err := deps.service.Update(ctx, targetID.String(), req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	targetID := uuid.New().String()

	t.Run("in use", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(&department.Department{}, nil)
		deps.repo.EXPECT().CountEmployees(ctx, targetID).Return(int64(2), nil)

		err := deps.service.Delete(ctx, targetID)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
	})

	t.Run("success", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(&department.Department{}, nil)
		deps.repo.EXPECT().CountEmployees(ctx, targetID).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, targetID).Return(nil)
		deps.redismock.ExpectDel(optionsKey).SetVal(1)

		err := deps.service.Delete(ctx, targetID)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
