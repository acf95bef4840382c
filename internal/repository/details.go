// Package repository implements the data access layer for the application.
package repository

import (
	"fmt"

	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// applyVoteDetails adds subqueries to fetch vote counts, comment count and the
// requesting user's vote in a single query. table is the subject's table name
// ("trades", "forum_posts", "events").
func applyVoteDetails(db *gorm.DB, table string, subject models.VoteSubject, currentUserID uint) *gorm.DB {
	base := fmt.Sprintf(
		"%[1]s.*, "+
			"(SELECT COUNT(*) FROM votes WHERE votes.subject_type = '%[2]s' AND votes.subject_id = %[1]s.id AND votes.value = 1) as upvotes, "+
			"(SELECT COUNT(*) FROM votes WHERE votes.subject_type = '%[2]s' AND votes.subject_id = %[1]s.id AND votes.value = -1) as downvotes, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.subject_type = '%[2]s' AND comments.subject_id = %[1]s.id AND comments.deleted_at IS NULL) as comments_count",
		table, subject,
	)

	if currentUserID != 0 {
		return db.Select(base+fmt.Sprintf(
			", COALESCE((SELECT value FROM votes WHERE votes.subject_type = '%s' AND votes.subject_id = %s.id AND votes.user_id = ?), 0) as user_vote_value",
			subject, table,
		), currentUserID)
	}

	return db.Select(base + ", 0 as user_vote_value")
}
