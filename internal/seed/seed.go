package seed

import (
	"log"
	"math/rand"

	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a connected mesh of marketplace data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll wipes every seeded table. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Vote{},
		&models.Comment{},
		&models.Vouch{},
		&models.Report{},
		&models.VerificationDocument{},
		&models.MiddlemanApplication{},
		&models.WishlistItem{},
		&models.TradeImage{},
		&models.Trade{},
		&models.ForumPost{},
		&models.Event{},
		&models.RoleHistory{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	log.Println("Cleared all tables")
	return nil
}

// SeedUsers creates numUsers accounts plus one admin and one moderator.
func (s *Seeder) SeedUsers(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers+2)

	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@bloxmarket.dev"
		u.Role = models.RoleAdmin
	})
	if err != nil {
		return nil, err
	}
	users = append(users, admin)

	mod, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "moderator"
		u.Email = "mod@bloxmarket.dev"
		u.Role = models.RoleModerator
	})
	if err != nil {
		return nil, err
	}
	users = append(users, mod)

	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedMarketplace creates trades, forum posts, events and wishlists owned by
// the given users, then layers votes, comments and vouches on top.
func (s *Seeder) SeedMarketplace(users []*models.User, numTrades int) error {
	if len(users) < 2 {
		return nil
	}
	r := rand.New(rand.NewSource(42))

	var trades []*models.Trade
	for i := 0; i < numTrades; i++ {
		owner := users[r.Intn(len(users))]
		trade, err := s.factory.CreateTrade(owner)
		if err != nil {
			return err
		}
		trades = append(trades, trade)
	}

	var posts []*models.ForumPost
	for i := 0; i < numTrades/2; i++ {
		post, err := s.factory.CreateForumPost(users[r.Intn(len(users))])
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}

	var events []*models.Event
	for i := 0; i < numTrades/5+1; i++ {
		event, err := s.factory.CreateEvent(users[r.Intn(len(users))])
		if err != nil {
			return err
		}
		events = append(events, event)
	}

	for _, user := range users {
		for i := 0; i < r.Intn(4); i++ {
			if _, err := s.factory.CreateWishlistItem(user); err != nil {
				return err
			}
		}
	}

	// Votes and comments from non-owners.
	for _, trade := range trades {
		for _, user := range users {
			if user.ID == trade.UserID || r.Intn(4) != 0 {
				continue
			}
			if err := s.factory.CreateVote(user, models.SubjectTrade, trade.ID); err != nil {
				return err
			}
			if r.Intn(3) == 0 {
				if err := s.factory.CreateComment(user, models.SubjectTrade, trade.ID); err != nil {
					return err
				}
			}
		}
	}
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID || r.Intn(5) != 0 {
				continue
			}
			if err := s.factory.CreateVote(user, models.SubjectForumPost, post.ID); err != nil {
				return err
			}
		}
	}
	for _, event := range events {
		for _, user := range users {
			if user.ID == event.UserID || r.Intn(5) != 0 {
				continue
			}
			if err := s.factory.CreateVote(user, models.SubjectEvent, event.ID); err != nil {
				return err
			}
		}
	}

	// A few vouches between random user pairs.
	for i := 0; i < len(users); i++ {
		rater := users[r.Intn(len(users))]
		ratee := users[r.Intn(len(users))]
		if rater.ID == ratee.ID {
			continue
		}
		if err := s.factory.CreateVouch(rater, ratee, nil); err != nil {
			// Duplicate (rater, ratee) pairs are expected with random picks.
			continue
		}
	}

	log.Printf("Seeded %d trades, %d forum posts, %d events", len(trades), len(posts), len(events))
	return nil
}
