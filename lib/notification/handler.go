package notification

import (
	log "github.com/sirupsen/logrus"

	"finance-flow-backend/db"
	notificationstore "finance-flow-backend/lib/notification/store"
	"finance-flow-backend/lib/smtp"
	usersstore "finance-flow-backend/lib/users/store"
	connectionhub "finance-flow-backend/lib/ws/hub/connection-hub"
	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
	dbmodels "finance-flow-backend/models/db"
	wsmodels "finance-flow-backend/models/ws"
)

// Delivery is fire-and-forget: a failed push or email is logged and dropped,
// it never fails the workflow action that produced it.
type Provider interface {
	Notify(userID string, requestID *string, data models.NotificationData)
	NotifyRole(role models.UserRole, requestID *string, data models.NotificationData)
	List(userID string, onlyUnread bool, pg apimodels.Pagination) (list []dbmodels.Notification, rowCount int64, err error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	CountUnread(userID string) (count int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     notificationstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     notificationstore.Provider
	userStore usersstore.Provider
}

func (i impl) Notify(userID string, requestID *string, data models.NotificationData) {
	logger := log.WithField("user_id", userID).WithField("code", data.Code)
	rec := dbmodels.Notification{
		UserID:    userID,
		Code:      data.Code,
		Title:     data.Title,
		Msg:       data.Msg,
		RequestID: requestID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to store notification")
		return
	}
	rec.ID = id

	connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
		ToUserID: userID,
		Time:     rec.CreatedAt.Format("02.01.2006 15:04:05"),
		Code:     string(rec.Code),
		Title:    rec.Title,
		Msg:      rec.Msg,
	})

	user, err := i.userStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("failed to load user for email notification")
		return
	}
	if user == nil || user.Email == "" {
		return
	}
	err = smtp.Instance.SendEMail(user.Email, data.Title, data.Msg)
	if err != nil {
		logger.WithError(err).Error("failed to send email notification")
	}
}

func (i impl) NotifyRole(role models.UserRole, requestID *string, data models.NotificationData) {
	users, err := i.userStore.ListByRole(role)
	if err != nil {
		log.WithField("role", role).WithError(err).Error("failed to list role recipients")
		return
	}
	for _, user := range users {
		i.Notify(user.ID, requestID, data)
	}
}

func (i impl) List(userID string, onlyUnread bool, pg apimodels.Pagination) ([]dbmodels.Notification, int64, error) {
	return i.store.List(userID, onlyUnread, pg)
}

func (i impl) MarkRead(userID, id string) error {
	return i.store.MarkRead(userID, id)
}

func (i impl) MarkAllRead(userID string) error {
	return i.store.MarkAllRead(userID)
}

func (i impl) CountUnread(userID string) (int64, error) {
	return i.store.CountUnread(userID)
}
