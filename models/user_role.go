package models

type UserRole string

const (
	RoleEmployee          UserRole = "EMPLOYEE"
	RoleFinanceTeam       UserRole = "FINANCE_TEAM"
	RoleFinanceController UserRole = "FINANCE_CONTROLLER"
	RoleDirector          UserRole = "DIRECTOR"
	RoleMD                UserRole = "MD"
	RoleAdmin             UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	RoleEmployee:          "Employee",
	RoleFinanceTeam:       "Finance team",
	RoleFinanceController: "Finance controller",
	RoleDirector:          "Director",
	RoleMD:                "Managing director",
	RoleAdmin:             "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

const SystemUser = "System"

type UserStatus string

const (
	UserActiveStatus   UserStatus = "ACTIVE"
	UserDisabledStatus UserStatus = "DISABLED"
)

// Actor is the authenticated user on whose behalf a workflow operation runs.
// Supplied by the session layer, trusted once supplied.
type Actor struct {
	ID         string
	Name       string
	Role       UserRole
	Department string
}
