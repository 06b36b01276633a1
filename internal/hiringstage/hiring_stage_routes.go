package hiringstage

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	stages := r.Group("/hiring-stages")
	stages.Use(middleware.AuthMiddleware())
	{
		stages.GET("", middleware.RBACAuthorize(rbacService, "hiring_stage", "read"), h.GetAll)
		stages.POST("", middleware.RBACAuthorize(rbacService, "hiring_stage", "create"), h.Create)
		stages.GET("/:id", middleware.RBACAuthorize(rbacService, "hiring_stage", "read"), h.GetById)
		stages.PUT("/:id", middleware.RBACAuthorize(rbacService, "hiring_stage", "update"), h.Update)
		stages.DELETE("/:id", middleware.RBACAuthorize(rbacService, "hiring_stage", "delete"), h.Delete)
	}
}
