package user

import (
	"context"
	"testing"

	"sacredgreeks/models"
	"sacredgreeks/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var threeDevices = []models.Device{{DeviceID: "phone"}, {DeviceID: "laptop"}, {DeviceID: "tablet"}}

func newAuthCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	for _, d := range threeDevices {
		require.NoError(t, mr.Set(utils.AuthCacheKey("u1", d.DeviceID), "hash"))
	}
	return client, mr
}

func TestSignOut(t *testing.T) {
	cache, mr := newAuthCache(t)

	repo := new(mockRepo)
	repo.On("GetByIDWithProjection", mock.Anything, "u1", bson.M{"devices": 1}).Return(&models.User{ID: "u1", Devices: threeDevices}, nil)
	repo.On("UpdateSetDocument", mock.Anything, "u1", bson.M{"devices": []models.Device{{DeviceID: "phone"}, {DeviceID: "tablet"}}}).Return(nil).Once()

	svc := &DefaultUserService{Repo: repo, AuthCache: cache}
	require.NoError(t, svc.SignOut(context.Background(), "u1", "laptop"))
	assert.False(t, mr.Exists(utils.AuthCacheKey("u1", "laptop")))
	assert.True(t, mr.Exists(utils.AuthCacheKey("u1", "phone")))

	assert.ErrorIs(t, svc.SignOut(context.Background(), "u1", "watch"), ErrDeviceNotFound)
	repo.AssertExpectations(t)
}

func TestSignOutOtherDevices(t *testing.T) {
	cache, mr := newAuthCache(t)

	repo := new(mockRepo)
	repo.On("GetByIDWithProjection", mock.Anything, "u1", bson.M{"devices": 1}).Return(&models.User{ID: "u1", Devices: threeDevices}, nil)
	repo.On("UpdateSetDocument", mock.Anything, "u1", bson.M{"devices": []models.Device{{DeviceID: "phone"}}}).Return(nil).Once()

	svc := &DefaultUserService{Repo: repo, AuthCache: cache}
	require.NoError(t, svc.SignOutOtherDevices(context.Background(), "u1", "phone"))

	assert.True(t, mr.Exists(utils.AuthCacheKey("u1", "phone")))
	assert.False(t, mr.Exists(utils.AuthCacheKey("u1", "laptop")))
	assert.False(t, mr.Exists(utils.AuthCacheKey("u1", "tablet")))
}

func TestListDevicesUnknownUser(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByIDWithProjection", mock.Anything, "ghost", mock.Anything).Return(nil, nil)

	_, err := (&DefaultUserService{Repo: repo}).ListDevices(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	stored := &models.User{ID: "u1", PasswordHash: hashed(t, "faithful1"), Devices: threeDevices}

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(stored, nil)

		err := (&DefaultUserService{Repo: repo}).ChangePassword(context.Background(), "u1", "nope", "newpass22", "phone")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(stored, nil)

		err := (&DefaultUserService{Repo: repo}).ChangePassword(context.Background(), "u1", "faithful1", "short", "phone")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("signs out other devices", func(t *testing.T) {
		cache, mr := newAuthCache(t)

		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(stored, nil)
		repo.On("UpdateSetDocument", mock.Anything, "u1", mock.MatchedBy(func(f bson.M) bool {
			_, ok := f["passwordHash"]
			return ok
		})).Return(nil).Once()
		repo.On("UpdateSetDocument", mock.Anything, "u1", bson.M{"devices": []models.Device{{DeviceID: "phone"}}}).Return(nil).Once()

		err := (&DefaultUserService{Repo: repo, AuthCache: cache}).ChangePassword(context.Background(), "u1", "faithful1", "newpass22", "phone")
		require.NoError(t, err)
		assert.False(t, mr.Exists(utils.AuthCacheKey("u1", "laptop")))
		repo.AssertExpectations(t)
	})
}
