package payroll

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	runs := r.Group("/payroll-processing")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetById)
		runs.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Create)
		if redisClient != nil {
			runs.POST(
				"/process",
				middleware.Idempotency(redisClient, zap.L().Named("payroll.idempotency")),
				middleware.RBACAuthorize(rbacService, "payroll", "process"),
				handler.Process,
			)
		} else {
			runs.POST("/process", middleware.RBACAuthorize(rbacService, "payroll", "process"), handler.Process)
		}
		runs.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkPaid)
		runs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.Delete)
	}

	slips := r.Group("/salary-slips")
	slips.Use(middleware.AuthMiddleware())
	{
		slips.GET("", middleware.RBACAuthorize(rbacService, "salary_slip", "read"), handler.GetSlips)
		slips.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_slip", "read"), handler.GetSlip)
		slips.GET("/:id/download", middleware.RBACAuthorize(rbacService, "salary_slip", "read"), handler.DownloadSlip)
		slips.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary_slip", "update"), handler.UpdateSlip)
		slips.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary_slip", "delete"), handler.DeleteSlip)
	}
}
