package user

import (
	"context"
	"strings"
	"testing"

	"curabot/database/repository/memstore"
	"curabot/models"
	"curabot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() *DefaultUserService {
	return &DefaultUserService{Repo: memstore.New().Users()}
}

func TestPasswordHashing(t *testing.T) {
	stored, err := HashPassword("s3cret")
	require.NoError(t, err)

	salt, hash, ok := strings.Cut(stored, ":")
	require.True(t, ok)
	assert.Len(t, salt, 32)
	assert.Len(t, hash, 128)

	assert.True(t, VerifyPassword(stored, "s3cret"))
	assert.False(t, VerifyPassword(stored, "S3cret"))
	assert.False(t, VerifyPassword("garbage", "s3cret"))
}

func TestRegister(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Name: "Jane", Email: "Jane@Example.com", Phone: "555", Password: "pw", Role: models.RoleAdmin,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, resp.User.Role)
	assert.Equal(t, "jane@example.com", resp.User.Email)

	claims, err := utils.ExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.Subject)
	assert.Equal(t, models.RolePatient, claims.Role)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "pw"}, "")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(ctx, RegisterRequest{Email: "x@example.com", Password: "pw"}, "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestRegister_AdminMayAssignRole(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Name: "Dr. Alice", Email: "alice@example.com", Password: "pw", Role: models.RoleDoctor,
	}, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, resp.User.Role)

	_, err = svc.Register(ctx, RegisterRequest{
		Name: "Eve", Email: "eve@example.com", Password: "pw", Role: "superuser",
	}, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "pw"}, "")
	require.NoError(t, err)

	resp, err := svc.Login(ctx, " JANE@example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := svc.GetUserByID(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", me.Name)
	_, err = svc.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
