package service

import (
	"context"
	"errors"
	"fmt"
	"jobplus/internal/auth"
	"jobplus/internal/entity"
	"jobplus/internal/model"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user is disabled")
)

// RegisterRequest 注册参数
type RegisterRequest struct {
	Email    string
	Password string
	Username string
	Role     entity.UserRole
}

// AccountService 负责注册与登录校验
type AccountService struct {
	repo model.Repository
}

func NewAccountService(repo model.Repository) *AccountService {
	return &AccountService{repo: repo}
}

// Register creates an active user with a hashed password. Role defaults to normal.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*entity.DbUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := req.Password
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	role := req.Role
	if role == 0 {
		role = entity.UserRoleNormal
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %d", int(role))
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	user := &entity.DbUser{
		Username: entity.Truncate(username, 32),
		Email:    email,
		Role:     role,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		logrus.WithError(err).WithField("email", email).Error("failed to create user")
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when the email exists, the account is active
// and password matches.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.DbUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("email", email).Warn("login attempt failed")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	if !user.CheckPassword(password) {
		logrus.WithField("email", email).Warn("password verification failed")
		return nil, ErrInvalidCredentials
	}
	if auth.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}
	return user, nil
}

// upgradeHash 按当前代价重新生成哈希，失败只记录日志
func (s *AccountService) upgradeHash(ctx context.Context, user *entity.DbUser, password string) {
	if err := user.SetPassword(password); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to rehash password")
		return
	}
	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{PasswordHash: &user.PasswordHash}); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to store rehashed password")
	}
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return ErrInvalidCredentials
	}
	if err := user.SetPassword(next); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdateUser(ctx, userID, entity.UserUpdates{PasswordHash: &user.PasswordHash})
}
