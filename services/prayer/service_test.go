package prayer

import (
	"context"
	"strings"
	"testing"
	"time"

	"sacredgreeks/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newPubSub(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreatePrayerRequest
	}{
		{name: "blank title", req: models.CreatePrayerRequest{Title: "  ", Body: "please pray"}},
		{name: "blank body", req: models.CreatePrayerRequest{Title: "Exams", Body: ""}},
		{name: "unknown category", req: models.CreatePrayerRequest{Title: "Exams", Body: "x", Category: "sports"}},
		{name: "title too long", req: models.CreatePrayerRequest{Title: strings.Repeat("a", maxTitleLen+1), Body: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &DefaultPrayerService{Repo: new(mockRepo)}
			_, err := svc.Create(context.Background(), "u1", tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateDefaultsAndAwards(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.PrayerRequest) bool {
		return p.Category == "general" && p.UserID == "u1" && p.PrayedBy != nil
	})).Return(nil).Once()

	points := new(mockPoints)
	points.On("Award", mock.Anything, "u1", models.ActionPrayerRequest, mock.Anything).Return(5, nil).Once()

	svc := &DefaultPrayerService{Repo: repo, Points: points, NowFn: func() time.Time { return fixedNow }}
	p, err := svc.Create(context.Background(), "u1", models.CreatePrayerRequest{Title: " Finals week ", Body: "Strength to finish"})
	require.NoError(t, err)
	assert.Equal(t, "Finals week", p.Title)
	assert.Equal(t, fixedNow, p.CreatedAt)

	repo.AssertExpectations(t)
	points.AssertExpectations(t)
}

func TestWallHidesAnonymousAuthors(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListPublic", mock.Anything, models.WallFilter{Category: "health", Limit: 20}).Return([]models.PrayerRequest{
		{ID: "a", UserID: "u1", AuthorName: "Ada", IsAnonymous: true, PrayedBy: []string{"u2"}},
		{ID: "b", UserID: "u3", AuthorName: "Ben"},
	}, nil)

	out, err := (&DefaultPrayerService{Repo: repo}).Wall(context.Background(), models.WallFilter{Category: " Health "})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Empty(t, out[0].UserID)
	assert.Empty(t, out[0].AuthorName)
	assert.Nil(t, out[0].PrayedBy)
	assert.Equal(t, "Ben", out[1].AuthorName)
}

func TestPrayFor(t *testing.T) {
	public := &models.PrayerRequest{ID: "r1", UserID: "author"}
	private := &models.PrayerRequest{ID: "r2", UserID: "author", IsPrivate: true}

	t.Run("first prayer earns points", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "r1").Return(public, nil)
		repo.On("AddPrayer", mock.Anything, "r1", "u1").Return(4, true, nil)
		points := new(mockPoints)
		points.On("Award", mock.Anything, "u1", models.ActionPrayFor, "r1").Return(2, nil)

		res, err := (&DefaultPrayerService{Repo: repo, Points: points}).PrayFor(context.Background(), "u1", "r1")
		require.NoError(t, err)
		assert.Equal(t, &models.PrayForResult{PrayerCount: 4, PointsEarned: 2}, res)
	})

	t.Run("repeat prayer is idempotent", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "r1").Return(public, nil)
		repo.On("AddPrayer", mock.Anything, "r1", "u1").Return(4, false, nil)
		points := new(mockPoints)

		res, err := (&DefaultPrayerService{Repo: repo, Points: points}).PrayFor(context.Background(), "u1", "r1")
		require.NoError(t, err)
		assert.True(t, res.AlreadyPrayed)
		assert.Equal(t, 4, res.PrayerCount)
		points.AssertNotCalled(t, "Award", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("private request is invisible to others", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "r2").Return(private, nil)

		_, err := (&DefaultPrayerService{Repo: repo}).PrayFor(context.Background(), "u1", "r2")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMarkAnsweredOwnerOnly(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "r1").Return(&models.PrayerRequest{ID: "r1", UserID: "author"}, nil)
	repo.On("MarkAnswered", mock.Anything, "r1", "He provided").
		Return(&models.PrayerRequest{ID: "r1", UserID: "author", IsAnswered: true, Testimony: "He provided"}, nil)

	svc := &DefaultPrayerService{Repo: repo}

	_, err := svc.MarkAnswered(context.Background(), "intruder", "r1", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.MarkAnswered(context.Background(), "author", "r1", "  He provided ")
	require.NoError(t, err)
	assert.True(t, got.IsAnswered)
}

func TestDeleteAllowsAdmin(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "r1").Return(&models.PrayerRequest{ID: "r1", UserID: "author"}, nil)
	repo.On("Delete", mock.Anything, "r1").Return(nil)

	svc := &DefaultPrayerService{Repo: repo}
	assert.ErrorIs(t, svc.Delete(context.Background(), "someone", "r1", false), ErrForbidden)
	assert.NoError(t, svc.Delete(context.Background(), "moderator", "r1", true))
}

func TestSubscribeReceivesWallEvents(t *testing.T) {
	client := newPubSub(t)

	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := &DefaultPrayerService{Repo: repo, PubSub: client, NowFn: func() time.Time { return fixedNow }}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := svc.Subscribe(ctx)
	require.NoError(t, err)

	created, err := svc.Create(ctx, "u1", models.CreatePrayerRequest{Title: "Travel", Body: "Safe roads", IsAnonymous: true})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, models.WallEventCreated, ev.Type)
		assert.Equal(t, created.ID, ev.RequestID)
		require.NotNil(t, ev.Request)
		assert.Empty(t, ev.Request.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("no wall event received")
	}

	cancel()
	for {
		select {
		case _, open := <-events:
			if !open {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("stream not closed after cancel")
		}
	}
}

func TestPrivateRequestsAreNotPublished(t *testing.T) {
	client := newPubSub(t)

	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := &DefaultPrayerService{Repo: repo, PubSub: client}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := svc.Subscribe(ctx)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1", models.CreatePrayerRequest{Title: "Family", Body: "Private need", IsPrivate: true})
	require.NoError(t, err)

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscribeWithoutRedis(t *testing.T) {
	_, err := (&DefaultPrayerService{}).Subscribe(context.Background())
	assert.ErrorIs(t, err, ErrStreamClosed)
}
