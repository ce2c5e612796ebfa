package user

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/entities"
	"Pantrii-Backend/pkg/jwt"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users []*entities.User
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := &fakeUserRepository{}
	jwtService := jwt.NewJWTServiceWithSecret("test-secret")
	svc := NewUserService(repo, jwtService)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{Name: "Sari", Email: " Sari@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "sari@example.com", res.Email)
	assert.Equal(t, domain.RoleUser, res.Role)
	require.Len(t, repo.users, 1)
	assert.NotEqual(t, "password123", repo.users[0].Password)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "Other", Email: "sari@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "SARI@example.com", Password: "password123"})
	require.NoError(t, err)
	userID, role, err := jwtService.GetUserIDByToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.ID, userID)
	assert.Equal(t, domain.RoleUser, role)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "sari@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	repo := &fakeUserRepository{}
	svc := NewUserService(repo, jwt.NewJWTServiceWithSecret("test-secret"))
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{Name: "Sari", Email: "sari@example.com", Password: "password123"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res, me)

	_, err = svc.Me(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
