package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapp/internal/auth"
	"todoapp/internal/model"
	"todoapp/internal/repository"
)

const resetTokenTTL = time.Hour

// AuthResult is the token pair plus profile returned by every credential
// operation that establishes a session.
type AuthResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int64       `json:"expiresIn"`
	User         *model.User `json:"user"`
}

// AuthService validates credentials and issues session/refresh tokens.
type AuthService struct {
	users  *repository.UserRepository
	tokens *repository.TokenRepository
	tm     *auth.TokenManager
	mailer Mailer
}

func NewAuthService(users *repository.UserRepository, tokens *repository.TokenRepository, tm *auth.TokenManager, mailer Mailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, tm: tm, mailer: mailer}
}

func (s *AuthService) Register(ctx context.Context, email, password, confirmPassword, name string) (*AuthResult, error) {
	if password != confirmPassword {
		return nil, fmt.Errorf("passwords do not match: %w", ErrInvalid)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email %q already registered: %w", email, ErrConflict)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
	}
	token := &model.VerificationToken{
		Token:     uuid.NewString(),
		Purpose:   model.PurposeEmailVerify,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	welcome := &model.Notification{
		Type:    "welcome",
		Title:   "Welcome!",
		Message: "Your account is ready. Create your first task to get started.",
	}
	if err := s.users.CreateWithOnboarding(ctx, user, token, welcome); err != nil {
		return nil, err
	}

	if err := s.mailer.SendEmailVerification(ctx, user.Email, token.Token); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("bad credentials: %w", ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("bad credentials: %w", ErrUnauthorized)
	}
	return s.issue(user)
}

// Refresh validates a refresh token and rotates the pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	email, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", ErrUnauthorized)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refresh: %w", ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("refresh: %w", ErrUnauthorized)
	}
	return s.issue(user)
}

// Logout is a stateless no-op; tokens stay valid until natural expiry.
func (s *AuthService) Logout() {}

// Authenticate resolves a session token to the user it belongs to. Used by
// the HTTP middleware once per request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	email, err := s.tm.ParseAccess(token)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", ErrUnauthorized)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("authenticate: %w", ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("authenticate: %w", ErrUnauthorized)
	}
	return user, nil
}

// ForgotPassword never reveals whether the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := &model.VerificationToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   model.PurposePasswordReset,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, token.Token)
}

func (s *AuthService) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	token, err := s.consume(ctx, tokenValue, model.PurposePasswordReset)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Save(ctx, user)
}

func (s *AuthService) VerifyEmail(ctx context.Context, tokenValue string) error {
	token, err := s.consume(ctx, tokenValue, model.PurposeEmailVerify)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	return s.users.Save(ctx, user)
}

func (s *AuthService) consume(ctx context.Context, value string, purpose model.TokenPurpose) (*model.VerificationToken, error) {
	token, err := s.tokens.FindByValue(ctx, value, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s token: %w", purpose, ErrUnauthorized)
		}
		return nil, err
	}
	now := time.Now()
	if token.UsedAt != nil {
		return nil, fmt.Errorf("%s token: %w", purpose, ErrUnauthorized)
	}
	if !now.Before(token.ExpiresAt) {
		return nil, fmt.Errorf("%s token: %w", purpose, ErrExpired)
	}
	if err := s.tokens.MarkUsed(ctx, token, now); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tm.GenerateAccess(user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tm.GenerateRefresh(user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:        token,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tm.AccessTTL().Seconds()),
		User:         user,
	}, nil
}
