package leave_test

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/leave/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func expectTx(t *testing.T, m sqlmock.Sqlmock, commit bool) {
	t.Helper()
	m.ExpectBegin()
	if commit {
		m.ExpectCommit()
	} else {
		m.ExpectRollback()
	}
}

func setupBalanceService(t *testing.T) (leave.BalanceService, *mock.MockRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()

	return leave.NewBalanceService(db, repo, nil), repo, sqlMock
}

func TestBalanceService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("allocated below used", func(t *testing.T) {
		svc, repo, sqlMock := setupBalanceService(t)
		expectTx(t, sqlMock, false)
		repo.EXPECT().FindBalanceByID(ctx, id).Return(&leave.LeaveBalance{Allocated: 12, Used: 5, Remaining: 7}, nil)

		_, err := svc.Update(ctx, id, leave.UpdateBalanceRequest{Allocated: 4})
		assert.ErrorIs(t, err, leaveerrors.ErrAllocatedBelowUsed)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("recomputes remaining", func(t *testing.T) {
		svc, repo, sqlMock := setupBalanceService(t)
		expectTx(t, sqlMock, true)
		repo.EXPECT().FindBalanceByID(ctx, id).Return(&leave.LeaveBalance{Allocated: 12, Used: 5, Remaining: 7}, nil)
		repo.EXPECT().UpdateBalance(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, b *leave.LeaveBalance) error {
			assert.Equal(t, 15, b.Allocated)
			assert.Equal(t, 10, b.Remaining)
			return nil
		})

		res, err := svc.Update(ctx, id, leave.UpdateBalanceRequest{Allocated: 15})
		require.NoError(t, err)
		assert.Equal(t, 10, res.Remaining)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, sqlMock := setupBalanceService(t)
		expectTx(t, sqlMock, false)
		repo.EXPECT().FindBalanceByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, id, leave.UpdateBalanceRequest{Allocated: 1})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveBalanceNotFound)
	})
}

func TestBalanceService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("used balance is kept", func(t *testing.T) {
		svc, repo, sqlMock := setupBalanceService(t)
		expectTx(t, sqlMock, false)
		repo.EXPECT().FindBalanceByID(ctx, id).Return(&leave.LeaveBalance{Allocated: 12, Used: 1, Remaining: 11}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, id), leaveerrors.ErrBalanceInUse)
	})

	t.Run("unused balance deleted", func(t *testing.T) {
		svc, repo, sqlMock := setupBalanceService(t)
		expectTx(t, sqlMock, true)
		repo.EXPECT().FindBalanceByID(ctx, id).Return(&leave.LeaveBalance{Allocated: 12, Remaining: 12}, nil)
		repo.EXPECT().DeleteBalance(ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, id))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo, sqlMock := setupBalanceService(t)
		expectTx(t, sqlMock, false)
		repo.EXPECT().FindBalanceByID(ctx, id).Return(&leave.LeaveBalance{}, nil)
		repo.EXPECT().DeleteBalance(ctx, id).Return(errors.New("db down"))

		assert.EqualError(t, svc.Delete(ctx, id), "db down")
	})
}

func TestBalanceService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupBalanceService(t)

	_, err := svc.Create(ctx, leave.CreateBalanceRequest{EmployeeID: "bad", LeaveTypeID: uuid.NewString(), Year: 2026})
	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)

	_, err = svc.Create(ctx, leave.CreateBalanceRequest{EmployeeID: uuid.NewString(), LeaveTypeID: uuid.NewString(), Year: 1990})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidYear)
}
