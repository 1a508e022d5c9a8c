package usecase

import (
	"context"
	"time"

	"devjobs-backend/internal/domain"
	"devjobs-backend/pkg/apperror"
	"devjobs-backend/pkg/auth"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo   domain.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager, bcryptCost int) domain.AuthUsecase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authUsecase{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (u *authUsecase) Register(ctx context.Context, username, email, password string) (*domain.UserProfile, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperror.BadRequest("All fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Only the sanitized projection leaves the service.
	return user.Profile(), nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.BadRequest("All fields are required")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	// One generic message for unknown email and wrong password alike,
	// so the endpoint cannot be used for account enumeration.
	if user == nil {
		return "", apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}
