package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockUsers implements the lookup the middleware uses; other methods panic.
type mockUsers struct {
	userRepo.UserRepository
	mock.Mock
}

func (m *mockUsers) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func protected(auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/me", auth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":   c.GetString("userID"),
			"deviceID": c.GetString("deviceID"),
			"role":     c.GetString("role"),
		})
	})
	return r
}

func call(r http.Handler, token, device string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if device != "" {
		req.Header.Set("X-Device-ID", device)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issue(t *testing.T, userID, deviceID string) string {
	t.Helper()
	tok, err := utils.GenerateToken(userID, userID+"@example.org", deviceID, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestJWTAuthUserMiddleware(t *testing.T) {
	token := issue(t, "u1", "phone")

	users := new(mockUsers)
	users.On("GetByIDWithProjection", mock.Anything, "u1").Return(&models.User{
		ID: "u1", Role: models.RoleAdmin,
		Devices: []models.Device{{DeviceID: "phone", TokenHash: utils.HashToken(token)}},
	}, nil)

	r := protected(JWTAuthUserMiddleware(users, nil))

	tests := []struct {
		name   string
		token  string
		device string
		status int
	}{
		{name: "valid", token: token, device: "phone", status: http.StatusOK},
		{name: "missing token", device: "phone", status: http.StatusUnauthorized},
		{name: "missing device header", token: token, status: http.StatusUnauthorized},
		{name: "device mismatch", token: token, device: "laptop", status: http.StatusUnauthorized},
		{name: "garbage token", token: "abc.def.ghi", device: "phone", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, call(r, tt.token, tt.device).Code)
		})
	}

	w := call(r, token, "phone")
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestJWTAuthRejectsReplacedToken(t *testing.T) {
	old := issue(t, "u1", "phone")
	current := issue(t, "u1", "phone-2")

	users := new(mockUsers)
	users.On("GetByIDWithProjection", mock.Anything, "u1").Return(&models.User{
		ID:      "u1",
		Devices: []models.Device{{DeviceID: "phone", TokenHash: utils.HashToken("a newer token")}, {DeviceID: "phone-2", TokenHash: utils.HashToken(current)}},
	}, nil)

	r := protected(JWTAuthUserMiddleware(users, nil))
	assert.Equal(t, http.StatusUnauthorized, call(r, old, "phone").Code)

	w := call(r, current, "phone-2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"member"`)
}

func TestJWTAuthUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	token := issue(t, "u1", "phone")
	users := new(mockUsers)
	users.On("GetByIDWithProjection", mock.Anything, "u1").Return(&models.User{
		ID: "u1", Role: models.RoleMember,
		Devices: []models.Device{{DeviceID: "phone", TokenHash: utils.HashToken(token)}},
	}, nil).Once()

	r := protected(JWTAuthUserMiddleware(users, cache))

	require.Equal(t, http.StatusOK, call(r, token, "phone").Code)
	cached, err := mr.Get(utils.AuthCacheKey("u1", "phone"))
	require.NoError(t, err)
	assert.Equal(t, encodeAuthEntry(models.RoleMember, utils.HashToken(token)), cached)

	require.Equal(t, http.StatusOK, call(r, token, "phone").Code)
	users.AssertNumberOfCalls(t, "GetByIDWithProjection", 1)

	// Signing out drops the cache entry; a stale hash is rejected outright.
	require.NoError(t, mr.Set(utils.AuthCacheKey("u1", "phone"), encodeAuthEntry(models.RoleMember, "other")))
	assert.Equal(t, http.StatusUnauthorized, call(r, token, "phone").Code)
}

func TestDecodeAuthEntry(t *testing.T) {
	role, hash := decodeAuthEntry("admin|abc")
	assert.Equal(t, "admin", role)
	assert.Equal(t, "abc", hash)

	role, hash = decodeAuthEntry("abc")
	assert.Empty(t, role)
	assert.Equal(t, "abc", hash)
}
