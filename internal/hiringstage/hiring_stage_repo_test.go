package hiringstage_test

import (
	"context"
	"testing"

	"go-hrms/internal/hiringstage"
	hiringstageerrors "go-hrms/internal/hiringstage/errors"

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

	require.NoError(t, db.AutoMigrate(&hiringstage.HiringStage{}))
	require.NoError(t, db.Exec(`CREATE TABLE candidates (id TEXT PRIMARY KEY, current_stage_id TEXT, deleted_at DATETIME)`).Error)
	return db
}

func seedStage(t *testing.T, db *gorm.DB, code string, seq int, active bool) hiringstage.HiringStage {
	t.Helper()
	st := hiringstage.HiringStage{ID: uuid.New(), Code: code, Name: code, Sequence: seq, IsActive: true}
	require.NoError(t, db.Create(&st).Error)
	if !active {
		require.NoError(t, db.Model(&st).Update("is_active", false).Error)
		st.IsActive = false
	}
	return st
}

func TestRepository_StageOrdering(t *testing.T) {
	db := setupDB(t)
	repo := hiringstage.NewRepository(db)
	ctx := context.Background()

	screening := seedStage(t, db, "SCREENING", 1, true)
	seedStage(t, db, "TECHNICAL", 2, false)
	offer := seedStage(t, db, "OFFER", 3, true)

	first, err := repo.FindFirstActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, screening.ID, first.ID)

	next, err := repo.FindNextActive(ctx, screening.Sequence)
	require.NoError(t, err)
	assert.Equal(t, offer.ID, next.ID, "inactive stages are skipped")

	_, err = repo.FindNextActive(ctx, offer.Sequence)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestService_Uniqueness(t *testing.T) {
	db := setupDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	svc := hiringstage.NewService(sqlDB, hiringstage.NewRepository(db))
	ctx := context.Background()

	created, err := svc.Create(ctx, hiringstage.CreateHiringStageRequest{Code: "applied", Name: "Applied", Sequence: 1})
	require.NoError(t, err)
	assert.Equal(t, "APPLIED", created.Code)

	_, err = svc.Create(ctx, hiringstage.CreateHiringStageRequest{Code: "INTERVIEW", Name: "Interview", Sequence: 1})
	assert.ErrorIs(t, err, hiringstageerrors.ErrHiringStageSequenceExists)

	_, err = svc.Create(ctx, hiringstage.CreateHiringStageRequest{Code: "APPLIED", Name: "Other", Sequence: 2})
	assert.ErrorIs(t, err, hiringstageerrors.ErrHiringStageCodeExists)

	updated, err := svc.Update(ctx, created.ID, hiringstage.UpdateHiringStageRequest{Code: "APPLIED", Name: "Applied", Sequence: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Sequence)

	require.NoError(t, db.Exec(`INSERT INTO candidates (id, current_stage_id) VALUES (?, ?)`, uuid.NewString(), created.ID).Error)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), hiringstageerrors.ErrHiringStageInUse)
}
