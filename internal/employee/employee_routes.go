package employee

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts /employees. Reads are rate limited per user, writes
// tighter since every create reserves a code and queues an event.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, logger *zap.Logger) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.ContextLogger(logger))

	read := middleware.RBACAuthorize(rbacService, "employee", "read")
	{
		employees.GET("", middleware.RateLimitByUser(3, 10), read, h.GetAll)
		employees.GET("/options", middleware.RateLimitByUser(5, 20), read, h.GetOptions)
		employees.GET("/:id", middleware.RateLimitByUser(3, 10), read, h.GetById)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			h.Create,
		)
		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			h.Update,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "employee", "delete"),
			h.Delete,
		)
	}
}
