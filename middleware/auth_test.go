package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stanislausjustin/user-service/config"
	"github.com/stanislausjustin/user-service/models"
	"github.com/stanislausjustin/user-service/utils"
)

func testRouter(tm *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", Auth(tm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(CtxUserID)})
	})
	router.GET("/admin", Auth(tm), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func newManager() *utils.TokenManager {
	return utils.NewTokenManager(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
	})
}

func doGet(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_NoToken(t *testing.T) {
	router := testRouter(newManager())

	w := doGet(router, "/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "No token provided")
}

func TestAuth_InvalidToken(t *testing.T) {
	router := testRouter(newManager())

	w := doGet(router, "/me", "Bearer garbage")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid token.")
}

func TestAuth_WrongSecret(t *testing.T) {
	router := testRouter(newManager())

	other := utils.NewTokenManager(&config.Config{
		AccessTokenSecret:  "some-other-secret",
		RefreshTokenSecret: "refresh-secret",
	})
	token, err := other.CreateAccessToken("u1", nil)
	require.NoError(t, err)

	w := doGet(router, "/me", "Bearer "+token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	tm := newManager()
	router := testRouter(tm)

	token, err := tm.CreateAccessToken("u1", []models.Role{models.RoleUser})
	require.NoError(t, err)

	// both header forms are accepted
	for _, header := range []string{"Bearer " + token, token} {
		w := doGet(router, "/me", header)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "u1")
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	tm := newManager()
	router := testRouter(tm)

	token, err := tm.CreateAccessToken("u1", []models.Role{models.RoleUser})
	require.NoError(t, err)

	w := doGet(router, "/admin", "Bearer "+token)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "admin privileges")
}

func TestRequireAdmin_Admin(t *testing.T) {
	tm := newManager()
	router := testRouter(tm)

	token, err := tm.CreateAccessToken("u1", []models.Role{models.RoleUser, models.RoleAdmin})
	require.NoError(t, err)

	w := doGet(router, "/admin", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
}
