package consumer

import (
	"context"
	"encoding/json"

	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipGenerator is implemented by payroll.Service.
type PayslipGenerator interface {
	GeneratePayslips(ctx context.Context, payrollID string) (int, error)
}

// PayrollProcessed renders and stores the payslip PDFs of a processed run.
// Slips that already have a stored payslip are skipped by the generator.
func PayrollProcessed(payslips PayslipGenerator, logger *zap.Logger) HandleFunc {
	log := logger.Named("payroll_processed")

	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.PayrollProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return permanent(err)
		}
		if event.EventType != "" && event.EventType != events.PayrollProcessed {
			return nil
		}

		generated, err := payslips.GeneratePayslips(ctx, event.PayrollID)
		if err != nil {
			return err
		}

		log.Info("payslips generated",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("payroll_id", event.PayrollID),
			zap.Int("month", event.Month),
			zap.Int("year", event.Year),
			zap.Int("generated", generated),
			zap.Int("slips", event.SlipCount),
		)
		return nil
	}
}
