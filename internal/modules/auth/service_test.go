package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"deipna/internal/domain"
	"deipna/internal/pkg/password"
	"deipna/internal/pkg/token"
	"deipna/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID == "" {
		u.ID = "user-1"
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockRefreshRepo struct {
	mock.Mock
}

func (m *mockRefreshRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRefreshRepo) GetActiveByToken(ctx context.Context, tokenValue string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshRepo) MarkRevoked(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRefreshRepo) Rotate(ctx context.Context, consumedID string, replacement *domain.RefreshToken) error {
	args := m.Called(ctx, consumedID, replacement)
	return args.Error(0)
}

func (m *mockRefreshRepo) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockRevokedRepo struct {
	mock.Mock
}

func (m *mockRevokedRepo) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	args := m.Called(ctx, jti, expiresAt)
	return args.Error(0)
}

func (m *mockRevokedRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueAccessToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssueRefreshToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) VerifyAccessToken(tokenStr string) (*token.AccessClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.AccessClaims), args.Error(1)
}

func (m *mockTokenService) VerifyRefreshToken(tokenStr string) (string, error) {
	args := m.Called(tokenStr)
	return args.String(0), args.Error(1)
}

func newTestService() (*Service, *mockUserRepo, *mockRefreshRepo, *mockRevokedRepo, *mockTokenService) {
	users := new(mockUserRepo)
	refresh := new(mockRefreshRepo)
	revoked := new(mockRevokedRepo)
	tokens := new(mockTokenService)
	svc := NewService(users, refresh, revoked, tokens, 15*time.Minute, 7*24*time.Hour)
	return svc, users, refresh, revoked, tokens
}

func TestRegister_Success(t *testing.T) {
	svc, users, refresh, _, tokens := newTestService()

	users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	tokens.On("IssueAccessToken", "user-1").Return("access-1", nil)
	tokens.On("IssueRefreshToken", "user-1").Return("refresh-1", nil)
	refresh.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "  New@Example.COM ",
		Password:  "supersecret1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-1", result.AccessToken)
	assert.Equal(t, "refresh-1", result.RefreshToken)
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.Equal(t, domain.RoleCustomer, result.User.Role)
	assert.NotEqual(t, "supersecret1", result.User.Password)

	users.AssertExpectations(t)
	refresh.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "taken@example.com",
		Password:  "supersecret1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	// the pre-check passes but the unique index catches the race
	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "taken@example.com",
		Password:  "supersecret1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	svc, users, refresh, _, tokens := newTestService()

	hash, err := password.Hash("right-password")
	require.NoError(t, err)

	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(&domain.User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Password: hash,
		Role:     domain.RoleCustomer,
	}, nil)
	tokens.On("IssueAccessToken", "user-1").Return("access-1", nil)
	tokens.On("IssueRefreshToken", "user-1").Return("refresh-1", nil)
	refresh.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Ada@Example.com",
		Password: "right-password",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-1", result.AccessToken)
	assert.Equal(t, "refresh-1", result.RefreshToken)
	refresh.AssertExpectations(t)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	hash, err := password.Hash("right-password")
	require.NoError(t, err)

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(&domain.User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Password: hash,
	}, nil)

	// unknown email and wrong password must be the same outcome
	_, errUnknown := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	_, errWrongPass := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, users, refresh, _, tokens := newTestService()

	tokens.On("VerifyRefreshToken", "refresh-old").Return("user-1", nil)
	refresh.On("GetActiveByToken", mock.Anything, "refresh-old").Return(&domain.RefreshToken{
		ID:        "row-1",
		Token:     "refresh-old",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("GetByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	tokens.On("IssueAccessToken", "user-1").Return("access-new", nil)
	tokens.On("IssueRefreshToken", "user-1").Return("refresh-new", nil)
	refresh.On("Rotate", mock.Anything, "row-1", mock.MatchedBy(func(r *domain.RefreshToken) bool {
		return r.Token == "refresh-new" && r.UserID == "user-1" && !r.Revoked
	})).Return(nil)

	result, err := svc.Refresh(context.Background(), "refresh-old")

	require.NoError(t, err)
	assert.Equal(t, "refresh-new", result.RefreshToken)
	assert.NotEqual(t, "refresh-old", result.RefreshToken)
	refresh.AssertExpectations(t)
}

func TestRefresh_ReusedTokenRejected(t *testing.T) {
	svc, _, refresh, _, tokens := newTestService()

	// the row was consumed by a previous refresh: no active row matches
	tokens.On("VerifyRefreshToken", "refresh-old").Return("user-1", nil)
	refresh.On("GetActiveByToken", mock.Anything, "refresh-old").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Refresh(context.Background(), "refresh-old")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_BadSignatureRejected(t *testing.T) {
	svc, _, refresh, _, tokens := newTestService()

	tokens.On("VerifyRefreshToken", "tampered").Return("", token.ErrInvalidToken)

	_, err := svc.Refresh(context.Background(), "tampered")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	refresh.AssertNotCalled(t, "GetActiveByToken", mock.Anything, mock.Anything)
}

func TestRefresh_ExpiredRowMarkedRevoked(t *testing.T) {
	svc, _, refresh, _, tokens := newTestService()

	tokens.On("VerifyRefreshToken", "refresh-stale").Return("user-1", nil)
	refresh.On("GetActiveByToken", mock.Anything, "refresh-stale").Return(&domain.RefreshToken{
		ID:        "row-1",
		Token:     "refresh-stale",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	refresh.On("MarkRevoked", mock.Anything, "row-1").Return(nil)

	_, err := svc.Refresh(context.Background(), "refresh-stale")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	refresh.AssertCalled(t, "MarkRevoked", mock.Anything, "row-1")
}

func TestRefresh_ConcurrentConsumptionRejected(t *testing.T) {
	svc, users, refresh, _, tokens := newTestService()

	tokens.On("VerifyRefreshToken", "refresh-old").Return("user-1", nil)
	refresh.On("GetActiveByToken", mock.Anything, "refresh-old").Return(&domain.RefreshToken{
		ID:        "row-1",
		Token:     "refresh-old",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("GetByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	tokens.On("IssueAccessToken", "user-1").Return("access-new", nil)
	tokens.On("IssueRefreshToken", "user-1").Return("refresh-new", nil)
	refresh.On("Rotate", mock.Anything, "row-1", mock.Anything).Return(repository.ErrTokenConsumed)

	_, err := svc.Refresh(context.Background(), "refresh-old")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_MissingAccountIsHardFailure(t *testing.T) {
	svc, users, refresh, _, tokens := newTestService()

	tokens.On("VerifyRefreshToken", "refresh-old").Return("user-gone", nil)
	refresh.On("GetActiveByToken", mock.Anything, "refresh-old").Return(&domain.RefreshToken{
		ID:        "row-1",
		Token:     "refresh-old",
		UserID:    "user-gone",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("GetByID", mock.Anything, "user-gone").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Refresh(context.Background(), "refresh-old")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_DeletesRowsAndDenylistsJTI(t *testing.T) {
	svc, _, refresh, revoked, tokens := newTestService()

	refresh.On("DeleteByUser", mock.Anything, "user-1").Return(nil)
	tokens.On("VerifyAccessToken", "access-1").Return(&token.AccessClaims{
		Subject: "user-1",
		JTI:     "jti-1",
	}, nil)
	revoked.On("Add", mock.Anything, "jti-1", mock.Anything).Return(nil)

	err := svc.Logout(context.Background(), "user-1", "access-1")

	require.NoError(t, err)
	refresh.AssertExpectations(t)
	revoked.AssertExpectations(t)
}

func TestLogout_BestEffortOnAccessToken(t *testing.T) {
	svc, _, refresh, revoked, tokens := newTestService()

	refresh.On("DeleteByUser", mock.Anything, "user-1").Return(nil)
	tokens.On("VerifyAccessToken", "broken").Return(nil, token.ErrInvalidToken)

	// an unverifiable access token must not fail the logout
	require.NoError(t, svc.Logout(context.Background(), "user-1", "broken"))
	require.NoError(t, svc.Logout(context.Background(), "user-1", ""))

	revoked.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestCurrentUser_NotFound(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	users.On("GetByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CurrentUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
