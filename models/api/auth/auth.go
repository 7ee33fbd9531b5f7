package authapimodels

import (
	"strings"

	"finance-flow-backend/models"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginData) Validate() error {
	vErr := &models.ValidationError{}
	if strings.TrimSpace(r.Email) == "" {
		vErr.Add("email", "email is required")
	}
	if r.Password == "" {
		vErr.Add("password", "password is required")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

type JWTResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshData struct {
	RefreshToken string `json:"refresh_token"`
}

type PasswordResetData struct {
	Email string `json:"email"`
}

type CreateUserData struct {
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number"`
	Department  string          `json:"department"`
	Entity      string          `json:"entity"`
	Role        models.UserRole `json:"role"`
}

func (r CreateUserData) Validate() error {
	vErr := &models.ValidationError{}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		vErr.Add("email", "a valid email is required")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		vErr.Add("first_name", "first name is required")
	}
	switch r.Role {
	case models.RoleEmployee, models.RoleFinanceTeam, models.RoleFinanceController,
		models.RoleDirector, models.RoleMD, models.RoleAdmin:
	default:
		vErr.Add("role", "unknown role")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
