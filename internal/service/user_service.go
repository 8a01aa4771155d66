package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/yakoovad/teamhub/internal/auth"
	"github.com/yakoovad/teamhub/internal/db"
	"github.com/yakoovad/teamhub/internal/model"
	"github.com/yakoovad/teamhub/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	tx db.Transactor

	users repository.UserRepository

	bcryptCost int
	tokenTTL   time.Duration
}

func NewUserService(tx db.Transactor) *UserService {
	return &UserService{
		tx:         tx,
		bcryptCost: bcrypt.DefaultCost,
		tokenTTL:   24 * time.Hour,
	}
}

func (u *UserService) Register(ctx context.Context, email, name, password string) (*model.User, *Error) {
	hash, err := auth.HashPassword(password, u.bcryptCost)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to register user")
	}

	id, err := u.users.Create(ctx, &repository.User{
		Email:          email,
		Name:           name,
		HashedPassword: hash,
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil, NewError(ErrorCodeConflict, "email already in use")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to register user")
	}

	return &model.User{
		ID:    id,
		Email: email,
		Name:  name,
	}, nil
}

// Login verifies credentials and issues a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (u *UserService) Login(ctx context.Context, email, password string) (string, *Error) {
	user, err := u.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", NewError(ErrorCodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return "", NewError(ErrorCodeUnspecified, "failed to sign in")
	}

	if !auth.ComparePassword(user.HashedPassword, password) {
		return "", NewError(ErrorCodeUnauthorized, "invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, u.tokenTTL)
	if err != nil {
		return "", NewError(ErrorCodeUnspecified, "failed to sign in")
	}

	return token, nil
}

func (u *UserService) WithUserRepo(userRepo repository.UserRepository) *UserService {
	u.users = userRepo
	return u
}

func (u *UserService) WithBcryptCost(cost int) *UserService {
	u.bcryptCost = cost
	return u
}

func (u *UserService) WithTokenTTL(ttl time.Duration) *UserService {
	u.tokenTTL = ttl
	return u
}
