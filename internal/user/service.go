package user

import (
	"context"
	"database/sql"
	"errors"

	"printmitra-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// PhoneLogin resolves-or-creates a customer identity for the given phone.
	PhoneLogin(ctx context.Context, phone string) (string, User, error)
	// EmailLogin authenticates shop owners and admins with a password.
	EmailLogin(ctx context.Context, email, password string) (string, User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// EnsureAdmin seeds the platform admin account on boot if it is missing.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PhoneLogin(ctx context.Context, phone string) (string, User, error) {
	log := logger.FromCtx(ctx)

	if !ValidPhone(phone) {
		return "", User{}, ErrInvalidPhone
	}

	u, err := s.repo.FindByPhone(ctx, phone)
	if errors.Is(err, sql.ErrNoRows) {
		u, err = s.repo.Create(ctx, phone, "Customer", RoleCustomer)
	}
	if err != nil {
		log.Error("phone login failed", zap.String("phone", phone), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("phone login completed", zap.Int64("user_id", u.ID))
	return token, u, nil
}

func (s *service) EmailLogin(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	if u.PasswordHash == nil || !CheckPasswordHash(password, *u.PasswordHash) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role))
	return token, u, err
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u, err := s.repo.CreateWithEmail(ctx, email, "Admin", hash, RoleAdmin)
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("admin account seeded", zap.Int64("user_id", u.ID))
	return nil
}

func (s *service) GetByID(ctx context.Context, id int64) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}
