package counter

import (
	"context"
	"database/sql"
	"fmt"

	"go-hrms/internal/shared/txconn"

	"gorm.io/gorm"
)

const (
	TypeEmployeeCode   = "employee_code"
	TypeJobPostingCode = "job_posting_code"
)

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// GetNextValue bumps the counter row atomically, creating it on first use.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	err := txconn.Conn(ctx, r.db, r.tx).Raw(`
		INSERT INTO code_counters (counter_type, last_value, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = code_counters.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// FormatCode renders a counter value like EMP-000042.
func FormatCode(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}
