package content

import (
	"context"
	"testing"
	"time"

	contentRepo "sacredgreeks/database/repository/content"
	"sacredgreeks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)

func newService(repo *mockRepo) *DefaultContentService {
	return &DefaultContentService{
		Repo:    repo,
		Premium: stubPremium{"paid": true},
		NowFn:   func() time.Time { return fixedNow },
	}
}

func TestGetPremiumGate(t *testing.T) {
	guide := &models.Content{ID: "g1", Kind: models.KindStudyGuide, Title: "Guide", Premium: true}

	tests := []struct {
		name   string
		viewer Viewer
		want   error
	}{
		{name: "anonymous", viewer: Viewer{}, want: ErrPremiumRequired},
		{name: "free member", viewer: Viewer{ID: "free"}, want: ErrPremiumRequired},
		{name: "premium member", viewer: Viewer{ID: "paid"}},
		{name: "admin", viewer: Viewer{ID: "staff", Admin: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			repo.On("GetByID", mock.Anything, "g1").Return(guide, nil)

			got, err := newService(repo).Get(context.Background(), "g1", tt.viewer)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "g1", got.ID)
		})
	}
}

func TestGetNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := newService(repo).Get(context.Background(), "missing", Viewer{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyDevotional(t *testing.T) {
	t.Run("defaults to today in UTC", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("LatestDevotionalOnOrBefore", mock.Anything, "2026-03-14").
			Return(&models.Content{ID: "d1", Kind: models.KindDevotional, PublishDate: "2026-03-12"}, nil)

		got, err := newService(repo).DailyDevotional(context.Background(), "", Viewer{})
		require.NoError(t, err)
		assert.Equal(t, "d1", got.ID)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := newService(new(mockRepo)).DailyDevotional(context.Background(), "14/03/2026", Viewer{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("nothing published yet", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("LatestDevotionalOnOrBefore", mock.Anything, "2020-01-01").Return(nil, nil)

		_, err := newService(repo).DailyDevotional(context.Background(), "2020-01-01", Viewer{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("premium devotional is gated", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("LatestDevotionalOnOrBefore", mock.Anything, "2026-03-14").
			Return(&models.Content{ID: "d2", Kind: models.KindDevotional, Premium: true, Body: "members only"}, nil)
		svc := newService(repo)

		got, err := svc.DailyDevotional(context.Background(), "", Viewer{})
		assert.ErrorIs(t, err, ErrPremiumRequired)
		assert.Nil(t, got)

		_, err = svc.DailyDevotional(context.Background(), "", Viewer{ID: "free"})
		assert.ErrorIs(t, err, ErrPremiumRequired)

		got, err = svc.DailyDevotional(context.Background(), "", Viewer{ID: "paid"})
		require.NoError(t, err)
		assert.Equal(t, "members only", got.Body)
	})
}

func TestPrayAlong(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "p1").Return(&models.Content{
		ID: "p1", Kind: models.KindPrayer, Title: "Evening prayer",
		Lines: []models.PrayerLine{{Text: "Be still", DurationSeconds: 3}, {Text: "Amen"}},
	}, nil)
	repo.On("GetByID", mock.Anything, "d1").Return(&models.Content{ID: "d1", Kind: models.KindDevotional}, nil)

	svc := newService(repo)

	script, err := svc.PrayAlong(context.Background(), "p1", Viewer{})
	require.NoError(t, err)
	assert.Equal(t, 3+DefaultLineSeconds, script.TotalSeconds)
	assert.Len(t, script.Lines, 2)
	assert.Equal(t, 3, script.Lines[1].StartSeconds)

	_, err = svc.PrayAlong(context.Background(), "d1", Viewer{})
	assert.ErrorIs(t, err, ErrNotAPrayer)
}

func TestCompleteAwardsOncePerDay(t *testing.T) {
	devotional := &models.Content{ID: "d1", Kind: models.KindDevotional}

	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "d1").Return(devotional, nil)
	repo.On("AddCompletion", mock.Anything, mock.MatchedBy(func(c *models.Completion) bool {
		return c.UserID == "u1" && c.Date == "2026-03-14" && c.Kind == models.KindDevotional
	})).Return(nil).Once()
	repo.On("AddCompletion", mock.Anything, mock.Anything).Return(contentRepo.ErrDuplicate).Once()

	points := new(mockPoints)
	points.On("Award", mock.Anything, "u1", models.ActionDevotionalComplete, "d1").Return(10, nil).Once()

	svc := newService(repo)
	svc.Points = points

	first, err := svc.Complete(context.Background(), Viewer{ID: "u1"}, "d1")
	require.NoError(t, err)
	assert.Equal(t, &models.CompletionResult{Completed: true, PointsEarned: 10}, first)

	second, err := svc.Complete(context.Background(), Viewer{ID: "u1"}, "d1")
	require.NoError(t, err)
	assert.False(t, second.Completed)
	assert.Zero(t, second.PointsEarned)

	points.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCompleteRequiresPremium(t *testing.T) {
	guide := &models.Content{ID: "g1", Kind: models.KindStudyGuide, Premium: true}

	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "g1").Return(guide, nil)
	repo.On("AddCompletion", mock.Anything, mock.Anything).Return(nil).Once()

	points := new(mockPoints)
	points.On("Award", mock.Anything, "paid", models.ActionStudyGuideComplete, "g1").Return(20, nil).Once()

	svc := newService(repo)
	svc.Points = points

	res, err := svc.Complete(context.Background(), Viewer{ID: "free"}, "g1")
	assert.ErrorIs(t, err, ErrPremiumRequired)
	assert.Nil(t, res)
	repo.AssertNumberOfCalls(t, "AddCompletion", 0)

	res, err = svc.Complete(context.Background(), Viewer{ID: "paid"}, "g1")
	require.NoError(t, err)
	assert.Equal(t, 20, res.PointsEarned)
	points.AssertExpectations(t)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   models.ContentInput
	}{
		{name: "missing title", in: models.ContentInput{Kind: models.KindStudyGuide}},
		{name: "unknown kind", in: models.ContentInput{Kind: "podcast", Title: "x"}},
		{name: "unknown pillar", in: models.ContentInput{Kind: models.KindStudyGuide, Title: "x", ProofPillar: "faith"}},
		{name: "devotional without date", in: models.ContentInput{Kind: models.KindDevotional, Title: "x"}},
		{name: "bad publish date", in: models.ContentInput{Kind: models.KindDevotional, Title: "x", PublishDate: "2026-13-01"}},
		{name: "empty prayer", in: models.ContentInput{Kind: models.KindPrayer, Title: "x"}},
		{name: "title without slug characters", in: models.ContentInput{Kind: models.KindStudyGuide, Title: "!!!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(new(mockRepo)).Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Content")).Return(nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(contentRepo.ErrDuplicate).Once()

	in := models.ContentInput{
		Kind: models.KindDevotional, Title: "  Called to Serve ", PublishDate: "2026-03-14",
		ProofPillar: models.PillarPurpose,
	}
	svc := newService(repo)

	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Called to Serve", c.Title)
	assert.Equal(t, "called-to-serve", c.Slug)
	assert.Equal(t, fixedNow, c.CreatedAt)

	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestListClampsPaging(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything, models.ContentFilter{Kind: models.KindPrayer, Limit: 100, Offset: 0}).
		Return([]models.Content{}, nil).Once()

	_, err := newService(repo).List(context.Background(), models.ContentFilter{Kind: models.KindPrayer, Limit: 500, Offset: -3})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBookmarks(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, "d1").Return(&models.Content{ID: "d1", Kind: models.KindDevotional, Title: "Hope"}, nil)
	repo.On("AddBookmark", mock.Anything, mock.Anything).Return(contentRepo.ErrDuplicate)

	svc := newService(repo)
	b, err := svc.AddBookmark(context.Background(), "u1", "d1")
	require.NoError(t, err, "duplicate bookmarks are idempotent")
	assert.Equal(t, "Hope", b.Title)

	_, err = svc.ListBookmarks(context.Background(), "u1", "video")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteMapsNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Delete", mock.Anything, "gone").Return(contentRepo.ErrContentNotFound)

	assert.ErrorIs(t, newService(repo).Delete(context.Background(), "gone"), ErrNotFound)
}
