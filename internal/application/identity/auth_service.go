package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ledgerline/backend/internal/domain/identity"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/infrastructure/auth"
)

// AuthService handles authentication flows: login, token refresh, logout
// and password changes. Login failures are reported with a single
// INVALID_CREDENTIALS error regardless of cause, so callers cannot probe
// which accounts exist.
type AuthService struct {
	userRepo   identity.UserRepository
	roleRepo   identity.RoleRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Info("login attempt for unknown email", zap.String("email", email))
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("login attempt for deactivated user",
			zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Info("login attempt with wrong password",
			zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	permissions, err := s.resolvePermissions(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Email:       user.Email,
		RoleID:      user.RoleID,
		Permissions: permissions,
	})
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             "Bearer",
		User:                  ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user's
// role and permissions are resolved again so revoked rights do not survive
// the rotation.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, shared.ErrUnauthorized
	}

	permissions, err := s.resolvePermissions(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email, user.RoleID, permissions)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             "Bearer",
		User:                  ToUserResponse(user),
	}, nil
}

// Logout blacklists the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// already invalid, nothing to revoke
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		return err
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// ChangePassword verifies the current password, stores the new hash and
// invalidates every token issued before the change
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return errInvalidCredentials
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	// outstanding tokens predate the change and must stop working
	if err := s.blacklist.InvalidateUserTokens(ctx, user.ID.String(), s.jwtService.RefreshExpiration()); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) resolvePermissions(ctx context.Context, user *identity.User) ([]string, error) {
	role, err := s.roleRepo.FindByID(ctx, user.RoleID)
	if err != nil {
		s.logger.Error("role lookup failed for user",
			zap.String("user_id", user.ID.String()),
			zap.String("role_id", user.RoleID.String()),
			zap.Error(err))
		return nil, err
	}

	permissions := make([]string, len(role.Permissions))
	for i, p := range role.Permissions {
		permissions[i] = p.Code()
	}
	return permissions, nil
}

func (s *AuthService) checkRevocation(ctx context.Context, claims *auth.Claims) error {
	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return err
	}
	if blacklisted {
		return shared.ErrUnauthorized
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
	if err != nil {
		return err
	}
	if invalidated {
		return shared.ErrUnauthorized
	}
	return nil
}
