package authutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finance-flow-backend/config"
	"finance-flow-backend/models"
)

func initTestConfig() {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 3600
	conf.Auth.JWTRefreshExpireInSec = 86400
	config.Conf = conf
}

func TestTokens(t *testing.T) {
	initTestConfig()

	t.Run(`refresh token round trip`, func(t *testing.T) {
		token, err := GetRefreshToken("user-1", "Asha Rao")
		require.Nil(t, err)

		userID, err := ParseRefreshToken(token)
		require.Nil(t, err)
		require.Equal(t, "user-1", userID)
	})

	t.Run(`access token is not a refresh token`, func(t *testing.T) {
		token, err := GetToken("user-1", "Asha Rao", "Finance", models.RoleEmployee)
		require.Nil(t, err)

		_, err = ParseRefreshToken(token)
		require.NotNil(t, err)
	})

	t.Run(`garbage is rejected`, func(t *testing.T) {
		_, err := ParseRefreshToken("not-a-token")
		require.NotNil(t, err)
	})
}
