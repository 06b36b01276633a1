package approvalworkflow

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	workflows := r.Group("/approval-workflows")
	workflows.Use(middleware.AuthMiddleware())
	{
		workflows.GET("", middleware.RBACAuthorize(rbacService, "approval_workflow", "read"), h.GetAll)
		workflows.POST("", middleware.RBACAuthorize(rbacService, "approval_workflow", "create"), h.Create)
		workflows.GET("/:id", middleware.RBACAuthorize(rbacService, "approval_workflow", "read"), h.GetById)
		workflows.PUT("/:id", middleware.RBACAuthorize(rbacService, "approval_workflow", "update"), h.Update)
		workflows.DELETE("/:id", middleware.RBACAuthorize(rbacService, "approval_workflow", "delete"), h.Delete)
	}
}
