package usecase_test

import (
	"context"
	"testing"

	"devjobs-backend/internal/domain"
	"devjobs-backend/internal/usecase"
	"devjobs-backend/pkg/apperror"
	"devjobs-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MinCost keeps the hashing fast in tests.
func newAuthUsecase(repo *MockUserRepo, tokens *auth.TokenManager) domain.AuthUsecase {
	return usecase.NewAuthUsecase(repo, tokens, bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")

	t.Run("Should fail when a field is missing", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := newAuthUsecase(mockRepo, tokens)

		_, err := uc.Register(context.Background(), "dev", "", "hunter2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "All fields are required")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should store a verifiable hash, never the plaintext", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := newAuthUsecase(mockRepo, tokens)

		var stored *domain.User
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(nil).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.User)
				stored.ID = 1
			})

		profile, err := uc.Register(context.Background(), "dev", "dev@example.com", "hunter2")
		assert.NoError(t, err)
		assert.NotEqual(t, "hunter2", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")))
		assert.Equal(t, int64(1), profile.ID)
		assert.Equal(t, "dev@example.com", profile.Email)
	})

	t.Run("Should surface a conflict from the repository", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := newAuthUsecase(mockRepo, tokens)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(apperror.Conflict("Username or email already registered"))

		_, err := uc.Register(context.Background(), "dev", "dev@example.com", "hunter2")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &domain.User{ID: 7, Email: "dev@example.com", PasswordHash: string(hash)}

	t.Run("Should issue a token carrying the user id", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := newAuthUsecase(mockRepo, tokens)

		mockRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(user, nil)

		token, err := uc.Login(context.Background(), "dev@example.com", "hunter2")
		assert.NoError(t, err)

		claims, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
	})

	t.Run("Unknown email and bad password produce the same message", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := newAuthUsecase(mockRepo, tokens)

		mockRepo.On("GetByEmail", mock.Anything, "nouser@x.com").Return(nil, nil)
		mockRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(user, nil)

		_, errUnknown := uc.Login(context.Background(), "nouser@x.com", "anything")
		_, errBadPass := uc.Login(context.Background(), "dev@example.com", "wrong")

		assert.Error(t, errUnknown)
		assert.Error(t, errBadPass)
		assert.Equal(t, errUnknown.Error(), errBadPass.Error())

		var appErr *apperror.AppError
		assert.ErrorAs(t, errUnknown, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}
