// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"bloxmarket/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// itemNames is a pool of virtual item names used for trades and wishlists.
var itemNames = []string{
	"Shadow Dragon", "Frost Fury", "Neon Parrot", "Mega Kangaroo",
	"Golden Griffin", "Bat Dragon", "Crow", "Evil Unicorn",
	"Arctic Reindeer", "Turtle", "Diamond Ladybug", "Candy Cannon",
	"Ice Golem", "Lava Scorpion", "Cloud Serpent", "Pixel Fox",
}

func randomItem(r *rand.Rand) string {
	return itemNames[r.Intn(len(itemNames))]
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadBack returns a timestamp up to maxDays in the past for a realistic
// created_at distribution.
func (f *Factory) spreadBack(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user. All seeded accounts use
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:     models.RoleUser,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTrade builds and persists a trade listing owned by the given user.
func (f *Factory) CreateTrade(user *models.User, overrides ...func(*models.Trade)) (*models.Trade, error) {
	trade := &models.Trade{
		UserID:      user.ID,
		Offering:    randomItem(f.r),
		Seeking:     randomItem(f.r),
		Description: gofakeit.Paragraph(1, 2, 8, "\n"),
		Status:      models.TradeStatusOpen,
		CreatedAt:   f.spreadBack(60),
	}

	for _, override := range overrides {
		override(trade)
	}

	if err := f.db.Create(trade).Error; err != nil {
		return nil, err
	}
	return trade, nil
}

// CreateForumPost builds and persists a discussion thread.
func (f *Factory) CreateForumPost(user *models.User) (*models.ForumPost, error) {
	categories := []string{"trading-tips", "scam-alerts", "general", "price-checks"}
	post := &models.ForumPost{
		UserID:    user.ID,
		Title:     gofakeit.Sentence(6),
		Content:   gofakeit.Paragraph(2, 3, 10, "\n"),
		Category:  categories[f.r.Intn(len(categories))],
		CreatedAt: f.spreadBack(90),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateEvent builds and persists an event. Roughly half of the seeded
// events are currently active, the rest upcoming or ended.
func (f *Factory) CreateEvent(user *models.User) (*models.Event, error) {
	now := time.Now()
	var starts, ends time.Time
	switch f.r.Intn(3) {
	case 0: // upcoming
		starts = now.Add(time.Duration(1+f.r.Intn(72)) * time.Hour)
		ends = starts.Add(time.Duration(12+f.r.Intn(96)) * time.Hour)
	case 1: // active
		starts = now.Add(-time.Duration(1+f.r.Intn(24)) * time.Hour)
		ends = now.Add(time.Duration(2+f.r.Intn(72)) * time.Hour)
	default: // ended
		ends = now.Add(-time.Duration(1+f.r.Intn(240)) * time.Hour)
		starts = ends.Add(-time.Duration(12+f.r.Intn(96)) * time.Hour)
	}

	event := &models.Event{
		UserID:      user.ID,
		Title:       fmt.Sprintf("%s Giveaway", randomItem(f.r)),
		Description: gofakeit.Paragraph(1, 2, 8, "\n"),
		Prize:       randomItem(f.r),
		StartsAt:    starts,
		EndsAt:      ends,
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateWishlistItem persists a wishlist entry for the user.
func (f *Factory) CreateWishlistItem(user *models.User) (*models.WishlistItem, error) {
	item := &models.WishlistItem{
		UserID:   user.ID,
		ItemName: randomItem(f.r),
		Note:     gofakeit.Sentence(8),
		Priority: f.r.Intn(10),
	}
	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateVote persists a vote by the user on the given subject.
func (f *Factory) CreateVote(user *models.User, subject models.VoteSubject, subjectID uint) error {
	value := 1
	if f.r.Intn(5) == 0 {
		value = -1
	}
	vote := &models.Vote{
		UserID:      user.ID,
		SubjectType: subject,
		SubjectID:   subjectID,
		Value:       value,
	}
	return f.db.Create(vote).Error
}

// CreateComment persists a comment by the user on the given subject.
func (f *Factory) CreateComment(user *models.User, subject models.VoteSubject, subjectID uint) error {
	comment := &models.Comment{
		SubjectType: subject,
		SubjectID:   subjectID,
		UserID:      user.ID,
		Content:     gofakeit.Sentence(12),
	}
	return f.db.Create(comment).Error
}

// CreateVouch persists a vouch and bumps the ratee's credibility the same
// way the repository does.
func (f *Factory) CreateVouch(rater, ratee *models.User, tradeID *uint) error {
	vouch := &models.Vouch{
		RaterID: rater.ID,
		RateeID: ratee.ID,
		TradeID: tradeID,
		Rating:  1 + f.r.Intn(5),
		Comment: gofakeit.Sentence(10),
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vouch).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", ratee.ID).
			Update("credibility_score", gorm.Expr("credibility_score + ?", vouch.CredibilityDelta())).Error
	})
}
