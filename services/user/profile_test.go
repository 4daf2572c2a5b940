package user

import (
	"context"
	"errors"
	"testing"

	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestGetProfileHidesPasswordHash(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", PasswordHash: "secret"}, nil)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)
	svc := &DefaultUserService{Repo: repo}

	u, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	off := false

	repo := new(mockRepo)
	repo.On("UpdateSetDocument", mock.Anything, "u1", bson.M{
		"displayName":  "Grace",
		"chapter":      "Beta Psi",
		"emailUpdates": false,
	}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", DisplayName: "Grace"}, nil)

	svc := &DefaultUserService{Repo: repo}
	u, err := svc.UpdateProfile(context.Background(), "u1", models.UpdateProfileRequest{
		DisplayName: " Grace ", Chapter: "Beta Psi", EmailUpdates: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", u.DisplayName)
	repo.AssertExpectations(t)

	_, err = svc.UpdateProfile(context.Background(), "u1", models.UpdateProfileRequest{InitiationYear: 1850})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	repo := new(mockRepo)
	repo.On("UpdateSetDocument", mock.Anything, "ghost", mock.Anything).Return(userRepo.ErrUserNotFound)

	_, err := (&DefaultUserService{Repo: repo}).UpdateProfile(context.Background(), "ghost", models.UpdateProfileRequest{Bio: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetAvatarReplacesOldAsset(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", AvatarPublicID: "avatars/old"}, nil)
	repo.On("UpdateSetDocument", mock.Anything, "u1", bson.M{"avatarUrl": "https://cdn/new.png", "avatarPublicId": "avatars/new"}).Return(nil)

	media := new(mockMedia)
	media.On("Delete", mock.Anything, "avatars/old").Return(nil).Once()

	u, err := (&DefaultUserService{Repo: repo, Media: media}).SetAvatar(context.Background(), "u1", "https://cdn/new.png", "avatars/new")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/new.png", u.AvatarURL)
	media.AssertExpectations(t)
}

func TestSetAvatarSameIDKeepsAsset(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", AvatarPublicID: "avatars/u1"}, nil)
	repo.On("UpdateSetDocument", mock.Anything, "u1", mock.Anything).Return(nil)
	media := new(mockMedia)

	_, err := (&DefaultUserService{Repo: repo, Media: media}).SetAvatar(context.Background(), "u1", "https://cdn/u1.png", "avatars/u1")
	require.NoError(t, err)
	media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteAccount(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", AvatarPublicID: "avatars/u1"}, nil)
	repo.On("Delete", mock.Anything, "u1").Return(nil)
	media := new(mockMedia)
	media.On("Delete", mock.Anything, "avatars/u1").Return(nil).Once()

	rankings := new(mockRankings)
	rankings.On("RemoveFromLeaderboard", mock.Anything, "u1").Return(nil).Once()

	svc := &DefaultUserService{Repo: repo, Media: media, Rankings: rankings}
	require.NoError(t, svc.DeleteAccount(context.Background(), "u1"))
	media.AssertExpectations(t)
	rankings.AssertExpectations(t)
}

func TestDeleteAccountIgnoresLeaderboardFailure(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)
	repo.On("Delete", mock.Anything, "u1").Return(nil)
	rankings := new(mockRankings)
	rankings.On("RemoveFromLeaderboard", mock.Anything, "u1").Return(errors.New("redis down")).Once()

	assert.NoError(t, (&DefaultUserService{Repo: repo, Rankings: rankings}).DeleteAccount(context.Background(), "u1"))
	rankings.AssertExpectations(t)
}

func TestListUsersNeverNil(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetAll", mock.Anything).Return(nil, nil)

	users, err := (&DefaultUserService{Repo: repo}).ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
