package services

import (
	"context"
	"errors"
	"time"

	"docman/models"
	"docman/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req models.CreateUserRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(id uint) (*models.User, error)
}

type AuthOptions struct {
	DefaultRoleID uint
}

type authService struct {
	userRepo  repositories.UserRepository
	tokens    TokenService
	blacklist BlacklistService
	opts      AuthOptions
	log       *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenService, blacklist BlacklistService, opts AuthOptions, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
		opts:      opts,
		log:       log,
	}
}

func (s *authService) Register(req models.CreateUserRequest) (*models.AuthResponse, error) {
	// Check if username or email is already in use
	taken, err := s.userRepo.IsTaken(req.Username, req.Email, 0)
	if err != nil {
		return nil, storeError(s.log, "user.is_taken", err, "", "")
	}
	if taken {
		return nil, models.ErrorConflict{Message: "username or email already exists"}
	}

	hashedPassword, err := hashPassword(s.log, req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		RoleID:    s.opts.DefaultRoleID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, storeError(s.log, "user.create", err, "", "username or email already exists")
	}

	return s.respond(user)
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByLogin(req.Username, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorForbidden{Message: "User does not exist"}
		}
		return nil, storeError(s.log, "user.get_by_login", err, "", "")
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Reason: models.BadLogin, Message: "invalid credentials"}
	}

	return s.respond(user)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrNoToken
	}

	// Tokens we did not sign, or that already expired, can never
	// authenticate again. Acknowledge them without taking a row.
	expiresAt, err := s.tokens.ExpiresAt(token)
	if err != nil || !expiresAt.After(time.Now()) {
		return nil
	}

	return s.blacklist.Revoke(ctx, token, expiresAt)
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "user.get", err, "user not found", "")
	}
	return user, nil
}

func (s *authService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.log.Error("sign token", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, errServer
	}

	return &models.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		RoleID: user.RoleID,
		Token:  token,
	}, nil
}

// bcrypt only looks at the first 72 bytes; the validator counts runes, so a
// multibyte password can still get here too long.
var errPasswordTooLong = models.ErrorBadRequest{Message: "password must be at most 72 bytes"}

func hashPassword(log *zap.Logger, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	switch {
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "", errPasswordTooLong
	case err != nil:
		log.Error("hash password", zap.Error(err))
		return "", errServer
	}
	return string(hashed), nil
}
