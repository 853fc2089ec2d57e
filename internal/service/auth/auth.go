// internal/service/auth/auth.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"insurance-service/internal/domain/activity"
	"insurance-service/internal/domain/auth"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"
	"insurance-service/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RateLimiter bounds repeated login attempts per (ip, username).
type RateLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, username string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, username string) error
}

// ActivityRecorder appends audit entries; failures never surface.
type ActivityRecorder interface {
	LogAction(ctx context.Context, userID int64, actionType, details string)
}

type AuthService struct {
	userRepo    user.Repository
	refreshRepo auth.RefreshTokenRepository
	jwtManager  *jwt.Manager
	rateLimiter RateLimiter
	recorder    ActivityRecorder
	refreshTTL  time.Duration
	logger      *zap.Logger
}

func NewAuthService(
	userRepo user.Repository,
	refreshRepo auth.RefreshTokenRepository,
	jwtManager *jwt.Manager,
	rateLimiter RateLimiter,
	recorder ActivityRecorder,
	refreshTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		jwtManager:  jwtManager,
		rateLimiter: rateLimiter,
		recorder:    recorder,
		refreshTTL:  refreshTTL,
		logger:      logger,
	}
}

// ========== Login ==========

// Login authenticates a user with username/password. Absent user, disabled
// account and wrong password all fail with the same error so usernames
// cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.rateLimiter != nil {
		allowed, _, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, req.Username)
		if err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
		if !allowed {
			return nil, xerrors.ErrRateLimited
		}
	}

	u, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	if !u.Enabled {
		return nil, xerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, req.Username); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	accessToken, _, err := s.jwtManager.Generator.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.rotateRefreshToken(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.LogAction(ctx, u.ID, activity.ActionLogin, fmt.Sprintf("user %s logged in", u.Username))
	}

	return &auth.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Username:     u.Username,
		Role:         u.Role,
		UserID:       u.ID,
		ExpiresIn:    int(s.jwtManager.Generator.Ttl.Seconds()),
	}, nil
}

// rotateRefreshToken revokes all live refresh tokens for the user and issues
// a fresh one, so at most one refresh token per user is live at a time.
func (s *AuthService) rotateRefreshToken(ctx context.Context, userID int64) (string, error) {
	if _, err := s.refreshRepo.DeleteByUserID(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	token := &auth.RefreshToken{
		UserID:    userID,
		Token:     generateOpaqueToken(),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}

	if err := s.refreshRepo.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to create refresh token: %w", err)
	}

	return token.Token, nil
}

func generateOpaqueToken() string {
	tokenBytes := make([]byte, 32)
	rand.Read(tokenBytes)
	return base64.URLEncoding.EncodeToString(tokenBytes)
}

// ========== Refresh ==========

// Refresh exchanges a live refresh token for a new access token. Expired
// tokens are deleted on sight.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.RefreshResponse, error) {
	t, err := s.refreshRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, xerrors.ErrInvalidToken
	}

	if time.Now().After(t.ExpiresAt) {
		if err := s.refreshRepo.Delete(ctx, t.ID); err != nil {
			s.logger.Warn("failed to delete expired refresh token", zap.Error(err))
		}
		return nil, xerrors.ErrInvalidToken
	}

	u, err := s.userRepo.FindByID(ctx, t.UserID)
	if err != nil || !u.Enabled {
		return nil, xerrors.ErrInvalidToken
	}

	accessToken, _, err := s.jwtManager.Generator.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &auth.RefreshResponse{
		Token:     accessToken,
		ExpiresIn: int(s.jwtManager.Generator.Ttl.Seconds()),
	}, nil
}

// ========== Logout ==========

// Logout revokes every refresh token for the user. The access token stays
// stateless and simply runs out its expiry.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if _, err := s.refreshRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	if s.recorder != nil {
		s.recorder.LogAction(ctx, userID, activity.ActionLogout, "user logged out")
	}

	return nil
}

// ========== Password Management ==========

// ChangePassword changes the password and revokes all refresh tokens.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *auth.ChangePasswordRequest) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return xerrors.BadRequestf("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if _, err := s.refreshRepo.DeleteByUserID(ctx, userID); err != nil {
		s.logger.Warn("failed to revoke refresh tokens after password change", zap.Error(err))
	}

	if s.recorder != nil {
		s.recorder.LogAction(ctx, userID, activity.ActionPasswordChange, "password changed")
	}

	return nil
}

// ========== Bootstrap ==========

// EnsureAdminExists creates the administrator account at startup if it is
// not already present.
func (s *AuthService) EnsureAdminExists(ctx context.Context, username, password string) error {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &user.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         user.RoleAdmin,
		Enabled:      true,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		// Lost a race against a concurrent boot; the account exists.
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("admin account created", zap.String("username", username))
	return nil
}

// ========== Token Validation ==========

// ValidateToken validates an access token and returns its claims.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, xerrors.ErrInvalidToken
	}
	return claims, nil
}
