package seed

import (
	"fmt"
	"log"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumMessages int
	// MaxDays bounds how far back seeded warble timestamps are spread.
	MaxDays     int
	ShouldClean bool
}

// Seed populates the database with test data: users, warbles, a follow mesh,
// and likes. Every seeded user authenticates with DefaultPassword.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d warbles...", opts.NumUsers, opts.NumMessages)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	messages, err := createMessages(factory, users, opts.NumMessages)
	if err != nil {
		return fmt.Errorf("failed to create warbles: %w", err)
	}
	log.Printf("✓ %d warbles created", len(messages))

	follows, err := createFollowMesh(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	likes, err := createLikes(factory, users, messages)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", likes)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// clearData removes all seedable rows in FK-safe order.
func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	for _, stmt := range []string{
		"DELETE FROM likes",
		"DELETE FROM follows",
		"DELETE FROM messages",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Well-known accounts for manual testing, same password as the rest.
	if count >= 2 {
		for _, name := range []string{"tuckerdiane", "test"} {
			name := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
			})
			if err != nil {
				log.Printf("Failed to create user %s: %v", name, err)
				continue
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser(func(u *models.User) {
			// suffix keeps generated usernames unique across the run
			u.Username = fmt.Sprintf("%s%d", u.Username, i)
			u.Email = fmt.Sprintf("%s@example.com", u.Username)
		})
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createMessages(factory *Factory, users []*models.User, count int) ([]*models.Message, error) {
	if len(users) == 0 {
		return nil, nil
	}

	messages := make([]*models.Message, 0, count)
	for i := 0; i < count; i++ {
		author := users[factory.rng.Intn(len(users))]
		msg, err := factory.CreateMessage(author)
		if err != nil {
			log.Printf("Failed to create warble for user %d: %v", author.ID, err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// createFollowMesh gives each user a handful of people to follow so that
// every feed has content. Self-edges and duplicates are skipped.
func createFollowMesh(factory *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		targets := 2 + factory.rng.Intn(4)
		seen := map[uint]bool{follower.ID: true}
		for j := 0; j < targets; j++ {
			followed := users[factory.rng.Intn(len(users))]
			if seen[followed.ID] {
				continue
			}
			seen[followed.ID] = true
			if err := factory.CreateFollow(follower, followed); err != nil {
				continue
			}
			created++
		}
	}
	return created, nil
}

// createLikes sprinkles likes across warbles. Users never like their own
// warbles and each (user, warble) pair is used at most once.
func createLikes(factory *Factory, users []*models.User, messages []*models.Message) (int, error) {
	if len(users) == 0 || len(messages) == 0 {
		return 0, nil
	}

	target := len(messages) / 2
	created := 0
	seen := map[[2]uint]bool{}
	for i := 0; i < target*3 && created < target; i++ {
		user := users[factory.rng.Intn(len(users))]
		msg := messages[factory.rng.Intn(len(messages))]
		if msg.UserID == user.ID {
			continue
		}
		key := [2]uint{user.ID, msg.ID}
		if seen[key] {
			continue
		}
		seen[key] = true
		if err := factory.CreateLike(user, msg); err != nil {
			continue
		}
		created++
	}
	return created, nil
}
