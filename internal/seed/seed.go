// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"smashboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Profile describes a seeding run. A YAML file can override the defaults
// to reproduce a specific data shape.
type Profile struct {
	Users    int      `yaml:"users"`
	Posts    int      `yaml:"posts"`
	Tags     []string `yaml:"tags"`
	MaxDays  int      `yaml:"max_days"`
	Password string   `yaml:"password"`
}

// DefaultProfile is the shape used when no profile file is given.
func DefaultProfile() Profile {
	return Profile{
		Users:   25,
		Posts:   100,
		MaxDays: 30,
		Tags: []string{
			"smash", "clears", "drops", "net-play", "footwork",
			"serve", "doubles", "singles", "rackets", "strings",
		},
		Password: "SeedPass123!@",
	}
}

// LoadProfile reads a YAML profile, filling gaps with the defaults.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read seed profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parse seed profile: %w", err)
	}
	return profile, nil
}

// Seeder populates the database with plausible forum activity.
type Seeder struct {
	db      *gorm.DB
	profile Profile
	rand    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, profile Profile) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:      db,
		profile: profile,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes every seeded row. Deletion order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"comment_likes", "comments", "post_likes", "bookmarks",
		"post_tags", "posts", "tags", "follows", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// Run seeds users, a follow mesh, tagged posts, threaded comments, and
// engagement edges, keeping the denormalized counters consistent.
func (s *Seeder) Run() error {
	users, err := s.seedUsers()
	if err != nil {
		return err
	}
	if err := s.seedFollows(users); err != nil {
		return err
	}
	posts, err := s.seedPosts(users)
	if err != nil {
		return err
	}
	if err := s.seedEngagement(users, posts); err != nil {
		return err
	}
	if err := s.seedComments(users, posts); err != nil {
		return err
	}
	log.Printf("Seeded %d users and %d posts", len(users), len(posts))
	return nil
}

func (s *Seeder) seedUsers() ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(s.profile.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, s.profile.Users)
	for i := 0; i < s.profile.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(10),
			IsActive: true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedFollows(users []*models.User) error {
	for _, follower := range users {
		// Each user follows a handful of others.
		for i := 0; i < 3; i++ {
			target := users[s.rand.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			err := s.db.Exec(
				"INSERT INTO follows (follower_id, following_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
				follower.ID, target.ID, time.Now(),
			).Error
			if err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedPosts(users []*models.User) ([]*models.Post, error) {
	categories := models.Categories()

	posts := make([]*models.Post, 0, s.profile.Posts)
	for i := 0; i < s.profile.Posts; i++ {
		author := users[s.rand.Intn(len(users))]
		post := &models.Post{
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(2, 4, 8, "\n\n"),
			AuthorID:  author.ID,
			Category:  categories[s.rand.Intn(len(categories))],
			ViewCount: s.rand.Intn(500),
			IsDraft:   s.rand.Intn(10) == 0,
			CreatedAt: s.pastTime(),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("seed post: %w", err)
		}
		if err := s.attachRandomTags(post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) attachRandomTags(post *models.Post) error {
	count := 1 + s.rand.Intn(3)
	for i := 0; i < count; i++ {
		name := s.profile.Tags[s.rand.Intn(len(s.profile.Tags))]

		var tag models.Tag
		err := s.db.Where("name = ?", name).First(&tag).Error
		if err == gorm.ErrRecordNotFound {
			tag = models.Tag{Name: name}
			if err := s.db.Create(&tag).Error; err != nil {
				return fmt.Errorf("seed tag: %w", err)
			}
		} else if err != nil {
			return err
		}

		ins := s.db.Exec(
			"INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			post.ID, tag.ID,
		)
		if ins.Error != nil {
			return ins.Error
		}
		if ins.RowsAffected > 0 {
			if err := s.db.Model(&models.Tag{}).
				Where("id = ?", tag.ID).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likers := s.rand.Intn(len(users)/2 + 1)
		for i := 0; i < likers; i++ {
			user := users[s.rand.Intn(len(users))]
			ins := s.db.Exec(
				"INSERT INTO post_likes (user_id, post_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
				user.ID, post.ID, time.Now(),
			)
			if ins.Error != nil {
				return fmt.Errorf("seed like: %w", ins.Error)
			}
			if ins.RowsAffected > 0 {
				if err := s.db.Model(&models.Post{}).
					Where("id = ?", post.ID).
					UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
					return err
				}
			}
		}

		if s.rand.Intn(3) == 0 {
			user := users[s.rand.Intn(len(users))]
			err := s.db.Exec(
				"INSERT INTO bookmarks (user_id, post_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
				user.ID, post.ID, time.Now(),
			).Error
			if err != nil {
				return fmt.Errorf("seed bookmark: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedComments(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		if post.IsDraft {
			continue
		}
		count := s.rand.Intn(5)
		var parentID *uint
		for i := 0; i < count; i++ {
			author := users[s.rand.Intn(len(users))]
			comment := &models.Comment{
				PostID:   post.ID,
				AuthorID: author.ID,
				Content:  gofakeit.Sentence(12),
				CreatedAt: post.CreatedAt.Add(
					time.Duration(s.rand.Intn(48)) * time.Hour),
			}
			// Roughly half the comments reply to the previous one, but never
			// deeper than the thread limit.
			if parentID != nil && i%2 == 1 && i <= models.MaxCommentDepth {
				comment.ParentID = parentID
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			if err := s.db.Model(&models.Post{}).
				Where("id = ?", post.ID).
				UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
				return err
			}
			parentID = &comment.ID
		}
	}
	return nil
}

func (s *Seeder) pastTime() time.Time {
	maxDays := s.profile.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	back := time.Duration(s.rand.Intn(maxDays*24)) * time.Hour
	return time.Now().Add(-back)
}
