package designation_test

import (
	"context"
	"testing"

	"go-hrms/internal/designation"
	designationerrors "go-hrms/internal/designation/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&designation.Designation{}))
	require.NoError(t, db.Exec(`CREATE TABLE departments (id TEXT PRIMARY KEY, name TEXT)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE employees (id TEXT PRIMARY KEY, designation_id TEXT, deleted_at DATETIME)`).Error)
	return db
}

func newService(t *testing.T, db *gorm.DB) designation.Service {
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return designation.NewService(sqlDB, designation.NewRepository(db))
}

func TestDesignationService_CRUD(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	deptID := uuid.NewString()
	require.NoError(t, db.Exec(`INSERT INTO departments (id, name) VALUES (?, ?)`, deptID, "Engineering").Error)

	created, err := svc.Create(ctx, designation.CreateDesignationRequest{
		Code:         "swe",
		Name:         "Software Engineer",
		DepartmentID: deptID,
	})
	require.NoError(t, err)
	assert.Equal(t, "SWE", created.Code)
	assert.Equal(t, deptID, created.DepartmentID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.DepartmentName)

	t.Run("duplicate code is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, designation.CreateDesignationRequest{Code: "SWE", Name: "Another"})
		assert.ErrorIs(t, err, designationerrors.ErrDesignationCodeExists)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, designation.CreateDesignationRequest{Code: "SE2", Name: "software engineer"})
		assert.ErrorIs(t, err, designationerrors.ErrDesignationNameExists)
	})

	t.Run("unknown department", func(t *testing.T) {
		_, err := svc.Create(ctx, designation.CreateDesignationRequest{Code: "QA", Name: "QA", DepartmentID: uuid.NewString()})
		assert.ErrorIs(t, err, designationerrors.ErrDepartmentNotFound)
	})

	t.Run("update keeps its own code", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, designation.UpdateDesignationRequest{Code: "SWE", Name: "Senior Software Engineer"})
		require.NoError(t, err)
		assert.Equal(t, "Senior Software Engineer", updated.Name)
		assert.Empty(t, updated.DepartmentID)
	})

	t.Run("list with search", func(t *testing.T) {
		_, err := svc.Create(ctx, designation.CreateDesignationRequest{Code: "ACC", Name: "Accountant"})
		require.NoError(t, err)

		items, total, err := svc.GetAll(ctx, response.PageQuery{Page: 1, PageSize: 10, Search: "senior"}, designation.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, items, 1)

		_, total, err = svc.GetAll(ctx, response.PageQuery{Page: 1, PageSize: 1}, designation.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("delete blocked while employees use it", func(t *testing.T) {
		require.NoError(t, db.Exec(`INSERT INTO employees (id, designation_id) VALUES (?, ?)`, uuid.NewString(), created.ID).Error)
		err := svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, designationerrors.ErrDesignationInUse)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, designationerrors.ErrDesignationNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, uuid.NewString()), designationerrors.ErrDesignationNotFound)
	})
}
