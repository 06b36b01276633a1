package rbac

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService Service) {
	authz := r.Group("/rbac")
	authz.Use(middleware.AuthMiddleware())
	{
		authz.POST("/enforce", middleware.RBACAuthorize(rbacService, "role", "read"), handler.Enforce)
	}

	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware())
	{
		roles.GET("", middleware.RBACAuthorize(rbacService, "role", "read"), handler.ListRoles)
		roles.POST("", middleware.RBACAuthorize(rbacService, "role", "create"), handler.CreateRole)
		roles.GET("/:id", middleware.RBACAuthorize(rbacService, "role", "read"), handler.GetRole)
		roles.PUT("/:id", middleware.RBACAuthorize(rbacService, "role", "update"), handler.UpdateRole)
		roles.DELETE("/:id", middleware.RBACAuthorize(rbacService, "role", "delete"), handler.DeleteRole)
		roles.PUT("/:id/permissions", middleware.RBACAuthorize(rbacService, "role", "update"), handler.UpdateRolePermissions)
	}

	permissions := r.Group("/permissions")
	permissions.Use(middleware.AuthMiddleware())
	{
		permissions.GET("", middleware.RBACAuthorize(rbacService, "role", "read"), handler.ListPermissions)
	}
}
