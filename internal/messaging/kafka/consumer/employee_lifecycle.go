package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BalanceAllocator is the part of leave.BalanceService the lifecycle consumer uses.
type BalanceAllocator interface {
	Allocate(ctx context.Context, req leave.AllocateRequest) ([]leave.LeaveBalanceResponse, error)
}

// EmployeeLifecycle allocates the default leave balances of a new employee.
// Allocation keeps existing rows, so redelivered events are harmless.
func EmployeeLifecycle(balances BalanceAllocator, now func() time.Time, logger *zap.Logger) HandleFunc {
	if now == nil {
		now = time.Now
	}
	log := logger.Named("employee_lifecycle")

	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return permanent(err)
		}
		if event.EventType != "" && event.EventType != events.EmployeeCreated {
			return nil
		}

		year := now().UTC().Year()
		if joined, err := time.Parse("2006-01-02", event.JoiningDate); err == nil && joined.Year() > year {
			year = joined.Year()
		}

		allocated, err := balances.Allocate(ctx, leave.AllocateRequest{EmployeeID: event.EmployeeID, Year: year})
		if err != nil {
			return err
		}

		log.Info("default leave balances allocated",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", event.EmployeeID),
			zap.String("employee_code", event.EmployeeCode),
			zap.Int("year", year),
			zap.Int("balances", len(allocated)),
		)
		return nil
	}
}
