package auth

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"finance-flow-backend/db"
	"finance-flow-backend/lib/notification"
	"finance-flow-backend/lib/smtp"
	usersstore "finance-flow-backend/lib/users/store"
	authutils "finance-flow-backend/lib/utils/auth-utils"
	"finance-flow-backend/models"
	authapimodels "finance-flow-backend/models/api/auth"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Login(data authapimodels.LoginData) (response authapimodels.JWTResponse, err error)
	Refresh(refreshToken string) (response authapimodels.JWTResponse, err error)
	// CreateUser registers an account with a generated password and emails the
	// credentials to the new user.
	CreateUser(actor models.Actor, data authapimodels.CreateUserData) (id string, err error)
	// ResetPassword replaces the password with a generated one and emails it.
	ResetPassword(email string) error
	GetActor(userID string) (actor models.Actor, err error)
	SetActive(actor models.Actor, userID string, active bool) error
	ListUsers(actor models.Actor) (list []dbmodels.AppUser, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Login(data authapimodels.LoginData) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", data.Email)
	user, err := i.store.GetByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("failed to find user by email")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("no user with this email")
		return authapimodels.JWTResponse{}, errors.New("invalid email or password")
	}
	if !user.IsActive {
		logger.Debug("user is disabled")
		return authapimodels.JWTResponse{}, errors.New("account is disabled")
	}
	if authutils.GetMD5Hash(data.Password) != user.Password {
		logger.Debug("password check failed")
		return authapimodels.JWTResponse{}, errors.New("invalid email or password")
	}
	response, err := i.issueTokens(*user)
	if err != nil {
		logger.WithError(err).Error("failed to generate JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.WithError(err).Error("failed to update last login")
	}
	return response, nil
}

func (i impl) Refresh(refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.New("invalid refresh token")
	}
	user, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, errors.New("account is disabled")
	}
	return i.issueTokens(*user)
}

func (i impl) issueTokens(user dbmodels.AppUser) (authapimodels.JWTResponse, error) {
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.Department, user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i impl) CreateUser(actor models.Actor, data authapimodels.CreateUserData) (string, error) {
	logger := log.WithField("email", data.Email)
	if !actor.Role.IsAdmin() {
		return "", models.NewAuthorizationError("only an administrator may create users")
	}
	err := data.Validate()
	if err != nil {
		return "", err
	}
	existing, err := i.store.GetByEmail(data.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewValidationError("email", "a user with this email already exists")
	}
	password := authutils.GeneratePassword(12)
	id, err := i.store.Create(dbmodels.AppUser{
		Password:    authutils.GetMD5Hash(password),
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		Department:  data.Department,
		Entity:      data.Entity,
		Role:        data.Role,
		IsActive:    true,
	})
	if err != nil {
		logger.WithError(err).Error("failed to create user")
		return "", err
	}
	logger.WithField("user_id", id).Info("user created")
	subject, body := models.GetNewUserCredentialsMail(data.Email, password)
	if err = smtp.Instance.SendEMail(data.Email, subject, body); err != nil {
		logger.WithError(err).Error("failed to send credentials email")
	}
	notification.Instance.Notify(id, nil, models.GetNotifyNewUser(data.Email))
	return id, nil
}

func (i impl) ResetPassword(email string) error {
	logger := log.WithField("email", email)
	user, err := i.store.GetByEmail(email)
	if err != nil {
		logger.WithError(err).Error("failed to find user by email")
		return err
	}
	if user == nil {
		// no signal whether the account exists
		return nil
	}
	password := authutils.GeneratePassword(12)
	err = i.store.Update(user.ID, map[string]interface{}{"password": authutils.GetMD5Hash(password)})
	if err != nil {
		logger.WithError(err).Error("failed to reset password")
		return err
	}
	subject, body := models.GetPasswordResetMail(password)
	if err = smtp.Instance.SendEMail(user.Email, subject, body); err != nil {
		logger.WithError(err).Error("failed to send password reset email")
	}
	notification.Instance.Notify(user.ID, nil, models.GetNotifyPasswordReset())
	return nil
}

func (i impl) GetActor(userID string) (models.Actor, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		return models.Actor{}, err
	}
	if user == nil {
		return models.Actor{}, models.NewNotFoundError("user")
	}
	return user.ToActor(), nil
}

func (i impl) SetActive(actor models.Actor, userID string, active bool) error {
	if !actor.Role.IsAdmin() {
		return models.NewAuthorizationError("only an administrator may manage users")
	}
	return i.store.Update(userID, map[string]interface{}{"is_active": active})
}

func (i impl) ListUsers(actor models.Actor) ([]dbmodels.AppUser, error) {
	if !actor.Role.IsAdmin() {
		return nil, models.NewAuthorizationError("only an administrator may list users")
	}
	return i.store.List()
}
