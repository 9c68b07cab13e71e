package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"deipna/internal/domain"
	"deipna/internal/pkg/password"
	"deipna/internal/repository"
)

// Service composes the token authority with the persisted refresh/denylist
// state into the register/login/refresh/logout operations.
type Service struct {
	users         UserRepositoryInterface
	refreshTokens RefreshTokenRepositoryInterface
	revokedTokens RevokedTokenRepositoryInterface
	tokens        TokenService
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// SessionResult is what every successful register/login/refresh returns.
type SessionResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	revokedTokens RevokedTokenRepositoryInterface,
	tokens TokenService,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		revokedTokens: revokedTokens,
		tokens:        tokens,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*SessionResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := domain.RoleCustomer
	if req.Role != "" {
		if parsed, ok := domain.ParseUserRole(req.Role); ok {
			role = parsed
		}
	}

	user := &domain.User{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     nullableString(req.Phone),
		Role:      role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// the pre-check races with concurrent registrations; the unique
		// index is the authority
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*SessionResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.Verify(user.Password, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Refresh validates the presented token twice: cryptographically (the
// token authority) and against the persisted row. Success consumes the row
// and issues a replacement, so refresh tokens form a single-use chain.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*SessionResult, error) {
	sub, err := s.tokens.VerifyRefreshToken(refreshRaw)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	row, err := s.refreshTokens.GetActiveByToken(ctx, refreshRaw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if row.IsExpired(time.Now()) {
		// tidy up the stale row on the way out; repeating the attempt
		// yields the same rejection
		if err := s.refreshTokens.MarkRevoked(ctx, row.ID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, sub)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// an account deleted out from under a live refresh token is an
			// unrecoverable inconsistency, not a client error
			return nil, fmt.Errorf("refresh token %s references missing user %s: %w", row.ID, sub, err)
		}
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	replacement := &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refreshTokens.Rotate(ctx, row.ID, replacement); err != nil {
		if errors.Is(err, repository.ErrTokenConsumed) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return &SessionResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout kills every refresh chain the account has, across all devices,
// and denylists the presented access token if it verifies. A missing or
// broken access token does not fail the call.
func (s *Service) Logout(ctx context.Context, userID, accessRaw string) error {
	if err := s.refreshTokens.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	if accessRaw == "" {
		return nil
	}
	claims, err := s.tokens.VerifyAccessToken(accessRaw)
	if err != nil {
		return nil
	}
	// the entry only needs to outlive the token it blocks
	return s.revokedTokens.Add(ctx, claims.JTI, time.Now().Add(s.accessTTL))
}

func (s *Service) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) issueSession(ctx context.Context, user *domain.User) (*SessionResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	row := &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refreshTokens.Create(ctx, row); err != nil {
		return nil, err
	}

	return &SessionResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func nullableString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
