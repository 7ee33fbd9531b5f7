package rbac

import (
	"strings"

	"finance-flow-backend/config"
	"finance-flow-backend/models"
)

type Provider interface {
	// CanActAtLevel reports whether the role may act at the given approval level.
	CanActAtLevel(role models.UserRole, level models.ApprovalLevel) bool
	// HasPermission checks an exact permission, then a "category:*" wildcard,
	// then falls back to true for ADMIN. Unknown role or level returns false.
	HasPermission(role models.UserRole, permission models.Permission) bool
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(config.Conf.Workflow.Levels)
}

func NewInstance(levels []config.WorkflowLevel) Provider {
	levelRoles := map[models.ApprovalLevel][]models.UserRole{}
	for _, l := range levels {
		levelRoles[models.ApprovalLevel(l.Level)] = []models.UserRole{
			models.UserRole(l.Role),
			models.RoleAdmin,
		}
	}
	return impl{
		levelRoles:  levelRoles,
		permissions: rolePermissions,
	}
}

type impl struct {
	levelRoles  map[models.ApprovalLevel][]models.UserRole
	permissions map[models.UserRole][]models.Permission
}

var rolePermissions = map[models.UserRole][]models.Permission{
	models.RoleEmployee: {
		models.PermRequestCreate,
		models.PermRequestEdit,
		models.PermRequestView,
		models.PermRequestSubmit,
		models.PermRequestDelete,
	},
	models.RoleFinanceTeam: {
		models.PermRequestView,
		models.PermApprovalAct,
		"report:*",
	},
	models.RoleFinanceController: {
		models.PermRequestView,
		models.PermApprovalAct,
		"report:*",
	},
	models.RoleDirector: {
		models.PermRequestView,
		models.PermApprovalAct,
		models.PermReportView,
	},
	models.RoleMD: {
		models.PermRequestView,
		models.PermApprovalAct,
		models.PermReportView,
	},
}

func (i impl) CanActAtLevel(role models.UserRole, level models.ApprovalLevel) bool {
	for _, allowed := range i.levelRoles[level] {
		if allowed == role {
			return true
		}
	}
	return false
}

func (i impl) HasPermission(role models.UserRole, permission models.Permission) bool {
	wildcard := models.Permission(permission.PermissionCategory() + ":*")
	for _, granted := range i.permissions[role] {
		if granted == permission || granted == wildcard {
			return true
		}
	}
	if role == models.RoleAdmin {
		return true
	}
	return false
}

// ParsePermission normalizes a permission string supplied externally.
func ParsePermission(s string) models.Permission {
	return models.Permission(strings.ToLower(strings.TrimSpace(s)))
}
