package app

import (
	"database/sql"

	"go-hrms/internal/approvalworkflow"
	"go-hrms/internal/attachmenttype"
	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/candidate"
	"go-hrms/internal/config"
	"go-hrms/internal/department"
	"go-hrms/internal/designation"
	"go-hrms/internal/employee"
	"go-hrms/internal/hiringstage"
	"go-hrms/internal/jobposting"
	"go-hrms/internal/leave"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/payroll"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shift"
	"go-hrms/internal/storage"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	store storage.Storage,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	departmentRepo := department.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	attachmentTypeRepo := attachmenttype.NewRepository(gormDB)
	hiringStageRepo := hiringstage.NewRepository(gormDB)
	workflowRepo := approvalworkflow.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	structureRepo := salarystructure.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	jobPostingRepo := jobposting.NewRepository(gormDB)
	candidateRepo := candidate.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, cfg.RBAC.PolicyTTL, logger)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo, cfg.JWT, logger)
	userService := user.NewService(userRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	designationService := designation.NewService(db, designationRepo, logger)
	shiftService := shift.NewService(db, shiftRepo, logger)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo, logger)
	attachmentTypeService := attachmenttype.NewService(db, attachmentTypeRepo, logger)
	hiringStageService := hiringstage.NewService(db, hiringStageRepo, logger)
	workflowService := approvalworkflow.NewService(db, workflowRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb, rbacService, logger)
	leaveService := leave.NewService(db, leaveRepo, leaveTypeRepo, workflowRepo, logger)
	balanceService := leave.NewBalanceService(db, leaveRepo, leaveTypeRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, shiftRepo, cfg.App.Location(), logger)
	structureService := salarystructure.NewService(db, structureRepo, logger)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		structureRepo,
		leaveRepo,
		leaveTypeRepo,
		outboxRepo,
		store,
		payroll.NewCalculator(cfg.Payroll.WorkingDays, cfg.Payroll.DeductibleLeaveCodes),
		logger,
	)
	jobPostingService := jobposting.NewService(db, jobPostingRepo, counterRepo, logger)
	candidateService := candidate.NewService(db, candidateRepo, jobPostingRepo, hiringStageRepo, attachmentTypeRepo, store, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	userHandler := user.NewHandler(userService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	designationHandler := designation.NewHandler(designationService, logger)
	shiftHandler := shift.NewHandler(shiftService, logger)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService, logger)
	attachmentTypeHandler := attachmenttype.NewHandler(attachmentTypeService, logger)
	hiringStageHandler := hiringstage.NewHandler(hiringStageService, logger)
	workflowHandler := approvalworkflow.NewHandler(workflowService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	balanceHandler := leave.NewBalanceHandler(balanceService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	structureHandler := salarystructure.NewHandler(structureService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	jobPostingHandler := jobposting.NewHandler(jobPostingService, logger)
	candidateHandler := candidate.NewHandler(candidateService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)

		department.RegisterRoutes(api, departmentHandler, rbacService)
		designation.RegisterRoutes(api, designationHandler, rbacService)
		shift.RegisterRoutes(api, shiftHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		attachmenttype.RegisterRoutes(api, attachmentTypeHandler, rbacService)
		hiringstage.RegisterRoutes(api, hiringStageHandler, rbacService)
		approvalworkflow.RegisterRoutes(api, workflowHandler, rbacService)

		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, balanceHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		salarystructure.RegisterRoutes(api, structureHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		jobposting.RegisterRoutes(api, jobPostingHandler, rbacService)
		candidate.RegisterRoutes(api, candidateHandler, rbacService)
	}

	return nil
}
