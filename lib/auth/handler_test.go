package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finance-flow-backend/lib/notification"
	"finance-flow-backend/lib/smtp"
	authutils "finance-flow-backend/lib/utils/auth-utils"
	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
	authapimodels "finance-flow-backend/models/api/auth"
	dbmodels "finance-flow-backend/models/db"
)

type fakeUserStore struct {
	byEmail map[string]*dbmodels.AppUser
	created []dbmodels.AppUser
	updates map[string]map[string]interface{}
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: map[string]*dbmodels.AppUser{},
		updates: map[string]map[string]interface{}{},
	}
}

func (f *fakeUserStore) Create(rec dbmodels.AppUser) (string, error) {
	f.created = append(f.created, rec)
	return "u1", nil
}
func (f *fakeUserStore) GetByID(string) (*dbmodels.AppUser, error) { return nil, nil }
func (f *fakeUserStore) GetByEmail(email string) (*dbmodels.AppUser, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserStore) Update(id string, updMap map[string]interface{}) error {
	f.updates[id] = updMap
	return nil
}
func (f *fakeUserStore) List() ([]dbmodels.AppUser, error) { return nil, nil }
func (f *fakeUserStore) ListByRole(models.UserRole) ([]dbmodels.AppUser, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []models.NotificationData
}

func (f *fakeNotifier) Notify(userID string, requestID *string, data models.NotificationData) {
	f.sent = append(f.sent, data)
}
func (f *fakeNotifier) NotifyRole(models.UserRole, *string, models.NotificationData) {}
func (f *fakeNotifier) List(string, bool, apimodels.Pagination) ([]dbmodels.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotifier) MarkRead(string, string) error     { return nil }
func (f *fakeNotifier) MarkAllRead(string) error          { return nil }
func (f *fakeNotifier) CountUnread(string) (int64, error) { return 0, nil }

type fakeMailer struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) SendEMail(to, subject, message string) error {
	f.to = to
	f.subject = subject
	f.body = message
	return nil
}

// passwordFromMail pulls the generated password out of the credentials mail
// body, which ends with "password: <value>." / "password is: <value>.".
func passwordFromMail(t *testing.T, body string) string {
	t.Helper()
	idx := strings.LastIndex(body, ": ")
	require.Greater(t, idx, 0)
	return strings.TrimSuffix(body[idx+2:], ".")
}

func TestCredentialDelivery(t *testing.T) {
	admin := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	t.Run(`new user password goes to email only`, func(t *testing.T) {
		store := newFakeUserStore()
		mailer := &fakeMailer{}
		notifier := &fakeNotifier{}
		smtp.Instance = mailer
		notification.Instance = notifier
		handler := impl{store: store}

		id, err := handler.CreateUser(admin, authapimodels.CreateUserData{
			Email:     "new.user@example.com",
			FirstName: "New",
			LastName:  "User",
			Role:      models.RoleEmployee,
		})
		require.Nil(t, err)
		require.Equal(t, "u1", id)

		require.Equal(t, "new.user@example.com", mailer.to)
		password := passwordFromMail(t, mailer.body)
		require.Len(t, password, 12)

		// the stored row carries the hash, never the plaintext
		require.Len(t, store.created, 1)
		require.Equal(t, authutils.GetMD5Hash(password), store.created[0].Password)

		// the persisted/pushed notification must not leak the password
		require.Len(t, notifier.sent, 1)
		require.NotContains(t, notifier.sent[0].Msg, password)
		require.Contains(t, notifier.sent[0].Msg, "new.user@example.com")
	})

	t.Run(`reset password goes to email only`, func(t *testing.T) {
		store := newFakeUserStore()
		user := dbmodels.AppUser{Email: "who@example.com", IsActive: true}
		user.ID = "u2"
		store.byEmail["who@example.com"] = &user
		mailer := &fakeMailer{}
		notifier := &fakeNotifier{}
		smtp.Instance = mailer
		notification.Instance = notifier
		handler := impl{store: store}

		err := handler.ResetPassword("who@example.com")
		require.Nil(t, err)

		require.Equal(t, "who@example.com", mailer.to)
		password := passwordFromMail(t, mailer.body)
		require.Len(t, password, 12)
		require.Equal(t, authutils.GetMD5Hash(password), store.updates["u2"]["password"])

		require.Len(t, notifier.sent, 1)
		require.NotContains(t, notifier.sent[0].Msg, password)
	})

	t.Run(`reset for an unknown email stays silent`, func(t *testing.T) {
		store := newFakeUserStore()
		mailer := &fakeMailer{}
		notifier := &fakeNotifier{}
		smtp.Instance = mailer
		notification.Instance = notifier
		handler := impl{store: store}

		err := handler.ResetPassword("nobody@example.com")
		require.Nil(t, err)
		require.Empty(t, mailer.to)
		require.Empty(t, notifier.sent)
	})
}
