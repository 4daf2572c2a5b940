// Command seed loads starter content and an admin account into MongoDB.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"sacredgreeks/config"
	"sacredgreeks/database"
	contentRepo "sacredgreeks/database/repository/content"
	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/services/content"
	"sacredgreeks/services/user"
	"sacredgreeks/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedOptions struct {
	Reset         bool
	Days          int
	AdminEmail    string
	AdminPassword string
}

func main() {
	if err := newSeedCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCommand() *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load starter devotionals, prayers and an admin account",
		Long: `Seed inserts a week of devotionals starting today, guided prayers with
pray-along lines, a premium study guide and, when --admin-email is set, an
admin account. Connection settings come from config.yaml or the environment.

Example:
  seed --days 14 --admin-email admin@sacredgreeks.com --admin-password 'Chang3me!'
  seed --reset`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "delete existing content before seeding")
	cmd.Flags().IntVar(&opts.Days, "days", 7, "number of daily devotionals to create")
	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", "", "email of the admin account to create")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", "", "password for the admin account")
	return cmd
}

func runSeed(ctx context.Context, opts *seedOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	config.LoadConfig()
	logger := utils.GetLogger()
	database.InitDB()
	defer database.Close(context.Background())

	if opts.Reset {
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		res, err := database.Collection("content").DeleteMany(ctx, bson.M{})
		cancel()
		if err != nil {
			return fmt.Errorf("failed to clear content: %w", err)
		}
		logger.Info("cleared content", zap.Int64("deleted", res.DeletedCount))
	}

	svc := &content.DefaultContentService{Repo: contentRepo.NewMongoContentRepo()}
	inputs := append(devotionals(time.Now().UTC(), opts.Days), prayers()...)
	inputs = append(inputs, studyGuide())

	created := 0
	for _, in := range inputs {
		if _, err := svc.Create(ctx, in); err != nil {
			logger.Warn("skipped content", zap.String("title", in.Title), zap.Error(err))
			continue
		}
		created++
	}
	logger.Info("seeded content", zap.Int("created", created), zap.Int("total", len(inputs)))

	if opts.AdminEmail != "" {
		if err := seedAdmin(ctx, userRepo.NewMongoUserRepo(), opts.AdminEmail, opts.AdminPassword); err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, repo userRepo.UserRepository, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := user.VerifyPasswordComplexity(password); err != nil {
		return err
	}

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		utils.GetLogger().Info("admin already exists", zap.String("email", email))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now()
	admin := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  "Sacred Greeks Admin",
		Role:         models.RoleAdmin,
		Devices:      []models.Device{},
		Demo:         models.DemoSettings{Scenario: models.DefaultDemoScenario},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	utils.GetLogger().Info("created admin", zap.String("email", email))
	return nil
}

var devotionalThemes = []struct {
	Pillar    string
	Title     string
	Scripture string
	Body      string
}{
	{models.PillarPurpose, "Called With Purpose", "Jeremiah 29:11",
		"Your letters do not define your calling. Ask God how your membership can serve the purpose He already placed on your life."},
	{models.PillarRituals, "Rituals in the Light", "1 Thessalonians 5:21",
		"Test everything and hold fast to what is good. Bring the traditions you love before God with an honest heart."},
	{models.PillarObligations, "Keeping Your Word", "Matthew 5:37",
		"Let your yes be yes. Consider the promises you have made and whether each one honors Christ first."},
	{models.PillarOutcomes, "Known by Fruit", "Matthew 7:16",
		"What has grown from your time in the organization? Name one fruit to celebrate and one to surrender."},
	{models.PillarFellowship, "Brothers and Sisters", "Psalm 133:1",
		"Unity is a gift. Reach out today to someone in your chapter who has been quiet lately."},
}

func devotionals(start time.Time, days int) []models.ContentInput {
	out := make([]models.ContentInput, 0, days)
	for i := 0; i < days; i++ {
		t := devotionalThemes[i%len(devotionalThemes)]
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, models.ContentInput{
			Kind:        models.KindDevotional,
			Title:       fmt.Sprintf("%s (%s)", t.Title, date),
			Summary:     t.Body,
			Body:        t.Body,
			Scripture:   t.Scripture,
			ProofPillar: t.Pillar,
			PublishDate: date,
			Tags:        []string{"daily", t.Pillar},
		})
	}
	return out
}

func prayers() []models.ContentInput {
	return []models.ContentInput{
		{
			Kind:        models.KindPrayer,
			Title:       "Morning Surrender",
			Summary:     "A short prayer to begin the day.",
			ProofPillar: models.PillarPurpose,
			Lines: []models.PrayerLine{
				{Text: "Lord, I give You this day."},
				{Text: "Order my steps and guard my words.", DurationSeconds: 6},
				{Text: "Let my letters point to Your name, not mine.", DurationSeconds: 7},
				{Text: "Amen."},
			},
			Tags: []string{"morning"},
		},
		{
			Kind:        models.KindPrayer,
			Title:       "Prayer for My Chapter",
			Summary:     "Intercession for the members you serve with.",
			ProofPillar: models.PillarFellowship,
			Lines: []models.PrayerLine{
				{Text: "Father, I lift up my chapter to You."},
				{Text: "Heal what is broken between us.", DurationSeconds: 6},
				{Text: "Make us a light on our campus and in our city.", DurationSeconds: 8},
				{Text: "In Jesus' name, amen."},
			},
			Tags: []string{"chapter", "intercession"},
		},
	}
}

func studyGuide() models.ContentInput {
	return models.ContentInput{
		Kind:        models.KindStudyGuide,
		Title:       "The P.R.O.O.F. Framework",
		Summary:     "Five lenses for examining Greek life through faith.",
		ProofPillar: models.PillarPurpose,
		Premium:     true,
		Sections: []models.StudySection{
			{Heading: "Purpose", Body: "Why did you join, and why do you stay?", Questions: []string{"What drew you to your organization?"}},
			{Heading: "Rituals", Body: "What do the rituals ask of you?", Questions: []string{"Is there anything you would not do in front of Christ?"}},
			{Heading: "Obligations", Body: "Which oaths have you taken?", Questions: []string{"Do any conflict with your faith commitments?"}},
			{Heading: "Outcomes", Body: "What has membership produced in your life?"},
			{Heading: "Fellowship", Body: "Who walks with you?"},
		},
		Tags: []string{"foundations"},
	}
}
