package seed

import (
	"testing"

	"bloxmarket/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RoleHistory{},
		&models.Trade{},
		&models.TradeImage{},
		&models.ForumPost{},
		&models.Event{},
		&models.WishlistItem{},
		&models.Vote{},
		&models.Comment{},
		&models.Vouch{},
		&models.Report{},
		&models.MiddlemanApplication{},
		&models.VerificationDocument{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedUsers_IncludesStaffAccounts(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(5)
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}
	if len(users) != 7 {
		t.Fatalf("expected 7 users (5 + admin + moderator), got %d", len(users))
	}

	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		t.Fatalf("missing admin account: %v", err)
	}
	var mod models.User
	if err := db.Where("role = ?", models.RoleModerator).First(&mod).Error; err != nil {
		t.Fatalf("missing moderator account: %v", err)
	}
}

func TestApplyFixtures(t *testing.T) {
	t.Parallel()

	raw := []byte(`
users:
  - username: frost_queen
    email: frost@bloxmarket.dev
    role: middleman
    credibility: 12
  - username: dragon_dealer
    email: dragon@bloxmarket.dev
trades:
  - username: dragon_dealer
    offering: Shadow Dragon
    seeking: Frost Fury
    status: open
`)

	fixtures, err := ParseFixtures(raw)
	if err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}

	db := openTestDB(t)
	s := NewSeeder(db)
	if err := s.ApplyFixtures(fixtures); err != nil {
		t.Fatalf("apply fixtures: %v", err)
	}

	var frost models.User
	if err := db.Where("username = ?", "frost_queen").First(&frost).Error; err != nil {
		t.Fatalf("missing fixture user: %v", err)
	}
	if frost.Role != models.RoleMiddleman {
		t.Fatalf("expected middleman role, got %s", frost.Role)
	}
	if frost.CredibilityScore != 12 {
		t.Fatalf("expected credibility 12, got %d", frost.CredibilityScore)
	}

	var trade models.Trade
	if err := db.Where("offering = ?", "Shadow Dragon").First(&trade).Error; err != nil {
		t.Fatalf("missing fixture trade: %v", err)
	}
	var owner models.User
	if err := db.First(&owner, trade.UserID).Error; err != nil {
		t.Fatalf("load trade owner: %v", err)
	}
	if owner.Username != "dragon_dealer" {
		t.Fatalf("trade owned by %s, expected dragon_dealer", owner.Username)
	}
}

func TestParseFixtures_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{
			name: "unknown role",
			raw: `
users:
  - username: a_user
    email: a@bloxmarket.dev
    role: superuser
`,
		},
		{
			name: "trade references undeclared user",
			raw: `
trades:
  - username: nobody
    offering: Crow
    seeking: Turtle
`,
		},
		{
			name: "duplicate username",
			raw: `
users:
  - username: twin
    email: one@bloxmarket.dev
  - username: twin
    email: two@bloxmarket.dev
`,
		},
		{
			name: "unknown trade status",
			raw: `
users:
  - username: a_user
    email: a@bloxmarket.dev
trades:
  - username: a_user
    offering: Crow
    seeking: Turtle
    status: haggling
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFixtures([]byte(tc.raw)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}
