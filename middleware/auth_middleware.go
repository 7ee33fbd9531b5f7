package middleware

import (
	"github.com/gofiber/fiber/v2"

	"finance-flow-backend/lib/rbac"
	authutils "finance-flow-backend/lib/utils/auth-utils"
	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, exist := claims["name"]; exist {
		if stringName, ok := name.(string); ok {
			return stringName
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func GetUserDepartment(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if department, exist := claims["department"]; exist {
		if stringDepartment, ok := department.(string); ok {
			return stringDepartment
		}
	}
	return ""
}

// GetActor assembles the acting user from the token claims.
func GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		ID:         GetUserID(ctx),
		Name:       GetUserName(ctx),
		Role:       GetUserRole(ctx),
		Department: GetUserDepartment(ctx),
	}
}

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not permitted"))
		}
		return ctx.Next()
	}
}

func PermissionRequired(permission models.Permission) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role := GetUserRole(ctx)
		if role == "" || !rbac.Instance.HasPermission(role, permission) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not permitted"))
		}
		return ctx.Next()
	}
}
