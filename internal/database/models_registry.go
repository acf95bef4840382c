package database

import "bloxmarket/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.RoleHistory{},
		&models.Trade{},
		&models.TradeImage{},
		&models.ForumPost{},
		&models.Event{},
		&models.Comment{},
		&models.Vote{},
		&models.WishlistItem{},
		&models.Vouch{},
		&models.Report{},
		&models.MiddlemanApplication{},
		&models.VerificationDocument{},
	}
}
