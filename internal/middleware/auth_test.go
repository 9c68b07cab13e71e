package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deipna/internal/pkg/token"
)

type stubRevokedLookup struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevokedLookup) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func newAuthTestRouter(tokens *token.Service, revoked RevokedLookup, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	guard := JWTAuth(tokens, revoked)
	if optional {
		guard = OptionalJWTAuth(tokens, revoked)
	}
	r.GET("/protected", guard, func(c *gin.Context) {
		userID, _ := c.Get(ContextUserID)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tokens := token.New("middleware-secret", 15*time.Minute, time.Hour)
	r := newAuthTestRouter(tokens, &stubRevokedLookup{}, false)

	access, err := tokens.IssueAccessToken("user-7")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+access)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-7")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	tokens := token.New("middleware-secret", 15*time.Minute, time.Hour)
	r := newAuthTestRouter(tokens, &stubRevokedLookup{}, false)

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		w := doRequest(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), "Missing or invalid authorization header")
	}
}

func TestJWTAuth_BadToken(t *testing.T) {
	tokens := token.New("middleware-secret", 15*time.Minute, time.Hour)
	r := newAuthTestRouter(tokens, &stubRevokedLookup{}, false)

	// a refresh token does not open protected routes
	refresh, err := tokens.IssueRefreshToken("user-7")
	require.NoError(t, err)

	for _, raw := range []string{"garbage", refresh} {
		w := doRequest(r, "Bearer "+raw)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	}
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	tokens := token.New("middleware-secret", 15*time.Minute, time.Hour)

	access, err := tokens.IssueAccessToken("user-7")
	require.NoError(t, err)
	claims, err := tokens.VerifyAccessToken(access)
	require.NoError(t, err)

	r := newAuthTestRouter(tokens, &stubRevokedLookup{revoked: map[string]bool{claims.JTI: true}}, false)
	w := doRequest(r, "Bearer "+access)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has been revoked")
}

func TestJWTAuth_DenylistLookupFailure(t *testing.T) {
	tokens := token.New("middleware-secret", 15*time.Minute, time.Hour)
	r := newAuthTestRouter(tokens, &stubRevokedLookup{err: assert.AnError}, false)

	access, err := tokens.IssueAccessToken("user-7")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+access)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOptionalJWTAuth_GuestPassesThrough(t *testing.T) {
	tokens := token.New("middleware-secret", 15*time.Minute, time.Hour)
	r := newAuthTestRouter(tokens, &stubRevokedLookup{}, true)

	// no token, a broken token and a revoked token all resolve to guest
	for _, header := range []string{"", "Bearer garbage"} {
		w := doRequest(r, header)
		assert.Equal(t, http.StatusOK, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), "null")
	}
}

func TestOptionalJWTAuth_AuthenticatedCaller(t *testing.T) {
	tokens := token.New("middleware-secret", 15*time.Minute, time.Hour)
	r := newAuthTestRouter(tokens, &stubRevokedLookup{}, true)

	access, err := tokens.IssueAccessToken("user-7")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-7")
}
