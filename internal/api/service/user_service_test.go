package service

import (
	"context"
	"testing"
	"time"

	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/entity"
	"stock-portfolio-service/pkg/logger"
	"stock-portfolio-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestUserService(repo *mockUserRepository) (UserService, PasswordHasher) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	return NewUserService(repo, hasher, logger.NewNop()), hasher
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, hasher := newTestUserService(repo)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.NotEqual(t, "secret", user.Password)
			assert.True(t, hasher.Verify("secret", user.Password))
			user.ID = 7
			user.CreatedAt = created
		}).
		Return(nil)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "secret", Email: "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, &dto.UserResponse{UserID: 7, Username: "alice", Email: "a@x.io", CreatedAt: created}, resp)
	repo.AssertExpectations(t)
}

func TestUserService_RegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	repo.On("Create", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "secret", Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserService_RegisterGenericFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	repo.On("Create", ctx, mock.Anything).Return(assert.AnError)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "secret", Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrCreateUser)
}

func TestUserService_RegisterPasswordTooLong(t *testing.T) {
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	long := make([]byte, MaxPasswordBytes+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice", Password: string(long), Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, hasher := newTestUserService(repo)

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	repo.On("FindByUsername", ctx, "alice").Return(&entity.User{ID: 3, Username: "alice", Password: hash}, nil)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "alice", password: "secret"},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "secret", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, &dto.LoginRequest{Username: tt.username, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(3), resp.UserID)
			assert.Equal(t, "alice", resp.Username)
		})
	}
}

func TestUserService_GetUserNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	repo.On("FindByID", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetUser(ctx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateUserRehashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, hasher := newTestUserService(repo)

	var nilString *string
	repo.On("Update", ctx, uint(5), nilString, mock.AnythingOfType("*string"), utils.ToPointer("new@x.io")).
		Run(func(args mock.Arguments) {
			hash := args.Get(3).(*string)
			assert.True(t, hasher.Verify("changed", *hash))
		}).
		Return(&entity.User{ID: 5, Username: "bob", Email: "new@x.io"}, nil)

	resp, err := svc.UpdateUser(ctx, 5, &dto.UpdateUserRequest{
		Username: utils.ToPointer(""),
		Password: utils.ToPointer("changed"),
		Email:    utils.ToPointer("new@x.io"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", resp.Email)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateUserErrors(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	repo.On("Update", ctx, uint(1), mock.Anything, mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Update", ctx, uint(2), mock.Anything, mock.Anything, mock.Anything).Return(nil, gorm.ErrDuplicatedKey)

	_, err := svc.UpdateUser(ctx, 1, &dto.UpdateUserRequest{Email: utils.ToPointer("x@x.io")})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.UpdateUser(ctx, 2, &dto.UpdateUserRequest{Username: utils.ToPointer("taken")})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	repo.On("Delete", ctx, uint(1)).Return(nil)
	repo.On("Delete", ctx, uint(2)).Return(gorm.ErrRecordNotFound)

	assert.NoError(t, svc.DeleteUser(ctx, 1))
	assert.ErrorIs(t, svc.DeleteUser(ctx, 2), ErrUserNotFound)
}
