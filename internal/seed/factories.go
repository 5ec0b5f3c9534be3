// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded user gets.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by Seed and by tests that need fixtures.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand

	// bcrypt of DefaultPassword, computed once per factory
	hashedPassword string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	return &Factory{db: db, opts: opts, rng: rng, hashedPassword: string(hashed)}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		Username:       username,
		Email:          fmt.Sprintf("%s@example.com", username),
		Password:       f.hashedPassword,
		Bio:            gofakeit.Sentence(8),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		ImageURL:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		HeaderImageURL: models.DefaultHeaderImageURL,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage constructs and persists a warble for the given user with a
// timestamp spread over the recent past so feeds look lived-in.
func (f *Factory) CreateMessage(user *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	msg := &models.Message{
		Text:      warbleText(f.rng),
		UserID:    user.ID,
		Timestamp: f.pastTimestamp(),
	}

	for _, override := range overrides {
		override(msg)
	}

	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateFollow persists a directed follow edge. Duplicate edges surface the
// database's uniqueness error to the caller.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	edge := &models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	return f.db.Create(edge).Error
}

// CreateLike records that user liked msg.
func (f *Factory) CreateLike(user *models.User, msg *models.Message) error {
	like := &models.Like{UserID: user.ID, MessageID: msg.ID}
	return f.db.Create(like).Error
}

func (f *Factory) pastTimestamp() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// warbleText produces a short status update that fits the column limit.
func warbleText(rng *rand.Rand) string {
	text := gofakeit.Sentence(4 + rng.Intn(8))
	if len(text) > models.MaxMessageLen {
		text = text[:models.MaxMessageLen]
	}
	return text
}
