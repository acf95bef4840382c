package seed

import (
	"fmt"
	"log"
	"os"

	"bloxmarket/internal/models"

	"gopkg.in/yaml.v3"
)

// Fixtures describes deterministic seed data loaded from a YAML file. It
// complements the random factories with named accounts and listings that
// demos and smoke tests can rely on.
type Fixtures struct {
	Users  []UserFixture  `yaml:"users"`
	Trades []TradeFixture `yaml:"trades"`
}

// UserFixture is one named account in a fixtures file.
type UserFixture struct {
	Username    string `yaml:"username"`
	Email       string `yaml:"email"`
	Role        string `yaml:"role"`
	Bio         string `yaml:"bio"`
	Credibility int    `yaml:"credibility"`
}

// TradeFixture is one listing in a fixtures file, owned by a user declared
// earlier in the same file.
type TradeFixture struct {
	Username string `yaml:"username"`
	Offering string `yaml:"offering"`
	Seeking  string `yaml:"seeking"`
	Status   string `yaml:"status"`
}

// LoadFixtures reads and parses a YAML fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path) // #nosec G304: path comes from CLI flags in a dev tool
	if err != nil {
		return nil, err
	}
	return ParseFixtures(raw)
}

// ParseFixtures parses fixtures from raw YAML and validates roles, statuses
// and trade ownership references.
func ParseFixtures(raw []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	declared := make(map[string]struct{}, len(f.Users))
	for i, u := range f.Users {
		if u.Username == "" || u.Email == "" {
			return nil, fmt.Errorf("fixtures: user %d missing username or email", i)
		}
		if u.Role != "" && !models.ValidRole(models.Role(u.Role)) {
			return nil, fmt.Errorf("fixtures: user %q has unknown role %q", u.Username, u.Role)
		}
		if _, dup := declared[u.Username]; dup {
			return nil, fmt.Errorf("fixtures: duplicate username %q", u.Username)
		}
		declared[u.Username] = struct{}{}
	}

	for i, tr := range f.Trades {
		if _, ok := declared[tr.Username]; !ok {
			return nil, fmt.Errorf("fixtures: trade %d references undeclared user %q", i, tr.Username)
		}
		if tr.Offering == "" || tr.Seeking == "" {
			return nil, fmt.Errorf("fixtures: trade %d missing offering or seeking", i)
		}
		if tr.Status != "" && !models.ValidTradeStatus(models.TradeStatus(tr.Status)) {
			return nil, fmt.Errorf("fixtures: trade %d has unknown status %q", i, tr.Status)
		}
	}

	return &f, nil
}

// ApplyFixtures persists every user and trade a fixtures file declares.
// All fixture accounts share the factory's default password.
func (s *Seeder) ApplyFixtures(f *Fixtures) error {
	byUsername := make(map[string]*models.User, len(f.Users))

	for _, uf := range f.Users {
		uf := uf
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = uf.Username
			u.Email = uf.Email
			if uf.Role != "" {
				u.Role = models.Role(uf.Role)
			}
			if uf.Bio != "" {
				u.Bio = uf.Bio
			}
			u.CredibilityScore = uf.Credibility
		})
		if err != nil {
			return fmt.Errorf("fixtures: create user %q: %w", uf.Username, err)
		}
		byUsername[user.Username] = user
	}

	for _, tf := range f.Trades {
		tf := tf
		owner := byUsername[tf.Username]
		_, err := s.factory.CreateTrade(owner, func(t *models.Trade) {
			t.Offering = tf.Offering
			t.Seeking = tf.Seeking
			if tf.Status != "" {
				t.Status = models.TradeStatus(tf.Status)
			}
		})
		if err != nil {
			return fmt.Errorf("fixtures: create trade for %q: %w", tf.Username, err)
		}
	}

	log.Printf("Applied fixtures: %d users, %d trades", len(f.Users), len(f.Trades))
	return nil
}
