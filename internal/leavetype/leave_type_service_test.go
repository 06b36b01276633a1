package leavetype_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrms/internal/leavetype"
	leavetypeerrors "go-hrms/internal/leavetype/errors"
	"go-hrms/internal/shared/response"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	findByIDFn   func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	findByCodeFn func(ctx context.Context, code string) (*leavetype.LeaveType, error)
	findByNameFn func(ctx context.Context, name string) (*leavetype.LeaveType, error)
	countUsageFn func(ctx context.Context, id string) (int64, error)
	updateFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context, q response.PageQuery) ([]leavetype.LeaveType, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) FindActive(ctx context.Context) ([]leavetype.LeaveType, error) {
	return nil, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByCode(ctx context.Context, code string) (*leavetype.LeaveType, error) {
	if f.findByCodeFn != nil {
		return f.findByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CountUsage(ctx context.Context, id string) (int64, error) {
	if f.countUsageFn != nil {
		return f.countUsageFn(ctx, id)
	}
	return 0, nil
}

func (f *fakeRepo) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
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

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success uppercases code and defaults flags", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var saved *leavetype.LeaveType
		repo := &fakeRepo{createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
			saved = lt
			return nil
		}}
		svc := leavetype.NewService(db, repo)

		expectTx(t, mock, true)
		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Code: " sick ", Name: "Sick Leave", DefaultDays: 12})

		require.NoError(t, err)
		assert.Equal(t, "SICK", resp.Code)
		assert.True(t, resp.IsPaid)
		assert.True(t, resp.IsActive)
		require.NotNil(t, saved)
		assert.True(t, saved.DeductsPay())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate code", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &fakeRepo{findByCodeFn: func(ctx context.Context, code string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: uuid.New(), Code: code}, nil
		}}
		svc := leavetype.NewService(db, repo)

		expectTx(t, mock, false)
		_, err = svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Code: "AL", Name: "Annual"})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeCodeExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &fakeRepo{findByNameFn: func(ctx context.Context, name string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: uuid.New(), Name: name}, nil
		}}
		svc := leavetype.NewService(db, repo)

		expectTx(t, mock, false)
		_, err = svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Code: "AL", Name: "Annual"})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameExists)
	})
}

func TestLeaveTypeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, got string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Code: "AL", Name: "Annual", IsPaid: true, IsActive: true}, nil
		},
		findByCodeFn: func(ctx context.Context, code string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Code: code}, nil
		},
	}
	svc := leavetype.NewService(db, repo)

	unpaid := false
	expectTx(t, mock, true)
	resp, err := svc.Update(ctx, id.String(), leavetype.UpdateLeaveTypeRequest{Code: "AL", Name: "Annual Leave", DefaultDays: 14, IsPaid: &unpaid})

	require.NoError(t, err)
	assert.Equal(t, "Annual Leave", resp.Name)
	assert.False(t, resp.IsPaid)
	assert.Equal(t, 14, resp.DefaultDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveTypeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		svc := leavetype.NewService(db, &fakeRepo{})

		expectTx(t, mock, false)
		err = svc.Delete(ctx, uuid.NewString())
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("in use", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
				return &leavetype.LeaveType{}, nil
			},
			countUsageFn: func(ctx context.Context, id string) (int64, error) { return 3, nil },
		}
		svc := leavetype.NewService(db, repo)

		expectTx(t, mock, false)
		err = svc.Delete(ctx, uuid.NewString())
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeInUse)
	})

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		deleted := ""
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
				return &leavetype.LeaveType{}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		svc := leavetype.NewService(db, repo)

		expectTx(t, mock, true)
		require.NoError(t, svc.Delete(ctx, "lt-1"))
		assert.Equal(t, "lt-1", deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveType_DeductsPay(t *testing.T) {
	cases := []struct {
		name string
		lt   leavetype.LeaveType
		want bool
	}{
		{"annual paid", leavetype.LeaveType{Code: "AL", Name: "Annual", IsPaid: true}, false},
		{"unpaid flag", leavetype.LeaveType{Code: "LWP", Name: "Leave Without Pay", IsPaid: false}, true},
		{"casual by code", leavetype.LeaveType{Code: "CASUAL", Name: "Casual Leave", IsPaid: true}, true},
		{"sick by name", leavetype.LeaveType{Code: "SL", Name: "sick", IsPaid: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.lt.DeductsPay())
		})
	}
}
