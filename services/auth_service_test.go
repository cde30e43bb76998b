package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
	"github.com/iroda0103/dastavka/utils"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour, testLogger())

	user, err := svc.Register(&RegisterReq{
		Phone:    "+998901234567",
		Password: "sekret",
		Name:     "Ali",
		Role:     entity.RoleClient,
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "sekret", user.Password)

	res, err := svc.Login(&LoginReq{Phone: "+998901234567", Password: "sekret"})
	require.NoError(t, err)
	require.Equal(t, user.ID, res.User.ID)

	claims, err := utils.ParseToken(res.Token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, string(entity.RoleClient), claims.Role)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour, testLogger())

	req := RegisterReq{Phone: "+998901234567", Role: entity.RoleClient}
	_, err := svc.Register(&req)
	require.NoError(t, err)

	_, err = svc.Register(&req)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRegisterWithoutPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour, testLogger())

	tg := "123456789"
	user, err := svc.Register(&RegisterReq{
		Phone:      "+998901234567",
		Role:       entity.RoleClient,
		TelegramID: &tg,
	})
	require.NoError(t, err)
	require.Empty(t, user.Password)
}

func TestLoginFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour, testLogger())

	_, err := svc.Register(&RegisterReq{
		Phone:    "+998901234567",
		Password: "sekret",
		Role:     entity.RoleClient,
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginReq{Phone: "+998900000000", Password: "sekret"})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.Login(&LoginReq{Phone: "+998901234567", Password: "wrong"})
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestMe(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour, testLogger())

	user, err := svc.Register(&RegisterReq{Phone: "+998901234567", Role: entity.RoleClient})
	require.NoError(t, err)

	got, err := svc.Me(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Phone, got.Phone)

	_, err = svc.Me(9999)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
