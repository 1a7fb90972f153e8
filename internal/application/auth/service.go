package auth

import (
	"context"
	"fmt"

	"centrex/internal/domain/user"
	"centrex/internal/infrastructure/auth"
	"centrex/internal/infrastructure/ratelimit"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

// PasswordHasher abstracts credential hashing so the service can be
// tested without bcrypt's cost.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}

type LoginResult struct {
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	ExpiresIn      int64  `json:"expires_in"`
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	MerchantNumber string `json:"merchant_number"`
}

// Service handles operator authentication: rate-limited login and
// refresh-token rotation.
type Service struct {
	userRepo    user.Repository
	hasher      PasswordHasher
	jwtService  *auth.JWTService
	rateLimiter ratelimit.RateLimiter
	logger      logger.Interface
}

func NewService(
	userRepo user.Repository,
	hasher PasswordHasher,
	jwtService *auth.JWTService,
	rateLimiter ratelimit.RateLimiter,
	logger logger.Interface,
) *Service {
	return &Service{
		userRepo:    userRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

func (s *Service) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	allowed, err := s.rateLimiter.Allow("login:"+clientIP, ratelimit.LoginLimit)
	if err != nil {
		// A broken limiter must not lock every operator out.
		s.logger.Warnw("rate limiter unavailable, allowing login attempt", "error", err)
	} else if !allowed {
		return nil, apperrors.NewBadRequestError("too many login attempts, try again later")
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, apperrors.NewUnauthorizedError("account is disabled")
	}

	if err := s.hasher.Verify(u.PasswordHash(), password); err != nil {
		s.logger.Infow("failed login attempt", "email", email, "client_ip", clientIP)
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	pair, err := s.jwtService.Generate(u.ID(), u.Role(), u.MerchantNumber())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Infow("operator logged in", "user_id", u.ID(), "merchant_number", u.MerchantNumber())

	return &LoginResult{
		AccessToken:    pair.AccessToken,
		RefreshToken:   pair.RefreshToken,
		ExpiresIn:      pair.ExpiresIn,
		UserID:         u.ID(),
		Name:           u.Name(),
		Role:           u.Role().String(),
		MerchantNumber: u.MerchantNumber(),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user is
// re-read so deactivation and role changes take effect immediately.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwtService.Verify(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, apperrors.NewUnauthorizedError("token is not a refresh token")
	}

	u, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("account no longer exists")
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, apperrors.NewUnauthorizedError("account is disabled")
	}

	pair, err := s.jwtService.Generate(u.ID(), u.Role(), u.MerchantNumber())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &LoginResult{
		AccessToken:    pair.AccessToken,
		RefreshToken:   pair.RefreshToken,
		ExpiresIn:      pair.ExpiresIn,
		UserID:         u.ID(),
		Name:           u.Name(),
		Role:           u.Role().String(),
		MerchantNumber: u.MerchantNumber(),
	}, nil
}
