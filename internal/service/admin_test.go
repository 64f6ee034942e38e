package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fundfolio/internal/database"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newAdmin(t *testing.T) (*AdminService, *database.Store) {
	db := setupDB(t)
	logger := logrus.New()
	store := database.New(db, logger)
	svc := NewAdminService(store, logger).WithClock(fixedClock(day1))
	return svc, store
}

func TestAddNavForToday_Duplicate(t *testing.T) {
	svc, store := newAdmin(t)
	ctx := context.Background()

	code := fmt.Sprintf("ADM_%d", time.Now().UnixNano())
	_, err := svc.CreateScript(ctx, code, "Admin Fund", "Hybrid", "Test AMC")
	require.NoError(t, err)

	first, err := svc.AddNavForToday(ctx, code, decimal.RequireFromString("213.40"))
	require.NoError(t, err)

	_, err = svc.AddNavForToday(ctx, code, decimal.RequireFromString("999.00"))
	require.ErrorIs(t, err, database.ErrNavExists)

	script, err := store.ScriptByCode(ctx, code)
	require.NoError(t, err)
	got, err := store.NavFor(ctx, script.ID, day1)
	require.NoError(t, err)
	require.True(t, got.NavValue.Equal(first.NavValue), "first nav changed: %s", got.NavValue)
}

func TestAddNavForToday_UnknownFund(t *testing.T) {
	svc, _ := newAdmin(t)

	_, err := svc.AddNavForToday(context.Background(), "NO_SUCH_FUND", decimal.RequireFromString("10"))
	require.ErrorIs(t, err, database.ErrScriptNotFound)
}

func TestAddNavForToday_NonPositive(t *testing.T) {
	svc, _ := newAdmin(t)

	_, err := svc.AddNavForToday(context.Background(), "ANY", decimal.Zero)
	require.ErrorIs(t, err, ErrNonPositiveNav)
}

func TestCreateScript_DuplicateCode(t *testing.T) {
	svc, _ := newAdmin(t)
	ctx := context.Background()

	code := fmt.Sprintf("DUP_%d", time.Now().UnixNano())
	_, err := svc.CreateScript(ctx, code, "First", "", "")
	require.NoError(t, err)

	_, err = svc.CreateScript(ctx, code, "Second", "", "")
	require.ErrorIs(t, err, database.ErrScriptExists)
}

func TestRegisterUser(t *testing.T) {
	svc, _ := newAdmin(t)
	ctx := context.Background()

	name := fmt.Sprintf("reg-%d", time.Now().UnixNano())
	user, err := svc.RegisterUser(ctx, name, "secret", database.RoleUser)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "secret", user.PasswordHash)

	_, err = svc.RegisterUser(ctx, name, "other", database.RoleUser)
	require.ErrorIs(t, err, database.ErrUsernameTaken)
}

func TestRegisterUser_BadRole(t *testing.T) {
	svc, _ := newAdmin(t)

	_, err := svc.RegisterUser(context.Background(), "whoever", "secret", database.Role("SUPERADMIN"))
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newAdmin(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, fmt.Sprintf("del-%d", time.Now().UnixNano()), "secret", database.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	require.ErrorIs(t, svc.DeleteUser(ctx, user.ID), database.ErrUserNotFound)
}
