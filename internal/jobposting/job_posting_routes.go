package jobposting

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	postings := r.Group("/job-postings")
	postings.Use(middleware.AuthMiddleware())
	{
		postings.GET("", middleware.RBACAuthorize(rbacService, "recruitment", "read"), h.GetAll)
		postings.POST("", middleware.RBACAuthorize(rbacService, "recruitment", "create"), h.Create)
		postings.GET("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "read"), h.GetById)
		postings.PUT("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "update"), h.Update)
		postings.DELETE("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "delete"), h.Delete)
	}
}
