package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-hrms/internal/config"
	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/payroll"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/storage"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer starts one reader per topic: new employees get their leave
// balances and processed payroll runs get their payslip PDFs.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	leaveRepo := leave.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	balanceService := leave.NewBalanceService(sqlDB, leaveRepo, leaveTypeRepo, logger)
	payrollService := payroll.NewService(
		sqlDB,
		payroll.NewRepository(gormDB),
		salarystructure.NewRepository(gormDB),
		leaveRepo,
		leaveTypeRepo,
		kafka.NewOutboxRepository(sqlDB),
		store,
		payroll.NewCalculator(cfg.Payroll.WorkingDays, cfg.Payroll.DeductibleLeaveCodes),
		logger,
	)

	lifecycleReader := newReader(cfg.Kafka, events.EmployeeLifecycleTopic, "leave-balances")
	defer lifecycleReader.Close()
	payrollReader := newReader(cfg.Kafka, events.PayrollTopic, "payslips")
	defer payrollReader.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.Run(ctx, lifecycleReader, "employee_lifecycle",
			consumer.EmployeeLifecycle(balanceService, nil, logger), logger)
	}()
	go func() {
		defer wg.Done()
		consumer.Run(ctx, payrollReader, "payroll_processed",
			consumer.PayrollProcessed(payrollService, logger), logger)
	}()

	<-ctx.Done()
	log.Info("consumer shutting down")
	wg.Wait()

	return nil
}

func newReader(cfg config.KafkaConfig, topic, purpose string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        cfg.ConsumerGroup + "-" + purpose,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
