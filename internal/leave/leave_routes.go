package leave

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	balanceHandler *BalanceHandler,
	rbacService rbac.Service,
) {
	applications := r.Group("/leave-applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		applications.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		applications.GET("/:id/approvals", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetApprovals)
		applications.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		applications.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Update)
		applications.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		applications.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
		applications.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Cancel)
		applications.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
	}

	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), balanceHandler.GetAll)
		balances.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), balanceHandler.GetById)
		balances.POST("", middleware.RBACAuthorize(rbacService, "leave_balance", "create"), balanceHandler.Create)
		balances.POST("/allocate", middleware.RBACAuthorize(rbacService, "leave_balance", "create"), balanceHandler.Allocate)
		balances.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_balance", "update"), balanceHandler.Update)
		balances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_balance", "delete"), balanceHandler.Delete)
	}
}
