package shift_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shift"
	shifterrors "go-hrms/internal/shift/errors"

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

	require.NoError(t, db.AutoMigrate(&shift.Shift{}))
	require.NoError(t, db.Exec(`CREATE TABLE employees (id TEXT PRIMARY KEY, shift_id TEXT, deleted_at DATETIME)`).Error)
	return db
}

func TestShiftService(t *testing.T) {
	db := setupDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	svc := shift.NewService(sqlDB, shift.NewRepository(db))
	ctx := context.Background()

	morning, err := svc.Create(ctx, shift.CreateShiftRequest{
		Name:         "Morning",
		StartTime:    "8:00",
		EndTime:      "17:00",
		GraceMinutes: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", morning.StartTime)
	assert.True(t, morning.IsActive)
	assert.False(t, morning.Overnight)

	t.Run("invalid clock", func(t *testing.T) {
		_, err := svc.Create(ctx, shift.CreateShiftRequest{Name: "Broken", StartTime: "25:00", EndTime: "10:00"})
		assert.ErrorIs(t, err, shifterrors.ErrInvalidClock)
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := svc.Create(ctx, shift.CreateShiftRequest{Name: "Zero", StartTime: "10:00", EndTime: "10:00"})
		assert.ErrorIs(t, err, shifterrors.ErrSameStartEnd)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Create(ctx, shift.CreateShiftRequest{Name: "morning", StartTime: "07:00", EndTime: "15:00"})
		assert.ErrorIs(t, err, shifterrors.ErrShiftNameExists)
	})

	night, err := svc.Create(ctx, shift.CreateShiftRequest{Name: "Night", StartTime: "22:00", EndTime: "06:00"})
	require.NoError(t, err)
	assert.True(t, night.Overnight)

	t.Run("list ordered by start time", func(t *testing.T) {
		items, total, err := svc.GetAll(ctx, response.PageQuery{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, items, 2)
		assert.Equal(t, "Morning", items[0].Name)
	})

	t.Run("update", func(t *testing.T) {
		inactive := false
		updated, err := svc.Update(ctx, night.ID, shift.UpdateShiftRequest{
			Name: "Night", StartTime: "21:30", EndTime: "05:30", IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, "21:30", updated.StartTime)
		assert.False(t, updated.IsActive)
	})

	t.Run("delete in use", func(t *testing.T) {
		require.NoError(t, db.Exec(`INSERT INTO employees (id, shift_id) VALUES (?, ?)`, uuid.NewString(), morning.ID).Error)
		err := svc.Delete(ctx, morning.ID)
		assert.ErrorIs(t, err, shifterrors.ErrShiftInUse)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, night.ID))
		_, err := svc.GetByID(ctx, night.ID)
		assert.ErrorIs(t, err, shifterrors.ErrShiftNotFound)
	})
}

func TestShift_LateAfter(t *testing.T) {
	s := shift.Shift{StartTime: "09:00", GraceMinutes: 10}
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	at, err := s.LateAfter(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 9, 10, 0, 0, time.UTC), at)
}
