package repository

import (
	"context"
	"errors"

	"bloxmarket/internal/cache"
	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// ForumListFilter narrows forum post listings.
type ForumListFilter struct {
	Category string
	Search   string
}

// ForumRepository defines the interface for forum post data operations
type ForumRepository interface {
	Create(ctx context.Context, post *models.ForumPost) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.ForumPost, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.ForumPost, error)
	List(ctx context.Context, limit, offset int, currentUserID uint, filter ForumListFilter) ([]*models.ForumPost, error)
	Update(ctx context.Context, post *models.ForumPost) error
	Delete(ctx context.Context, id uint) error
	OwnerID(ctx context.Context, id uint) (uint, error)
}

type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository creates a new forum repository
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) Create(ctx context.Context, post *models.ForumPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID loads the post with its computed vote/comment details. Anonymous
// reads go through the cache; per-user reads bypass it.
func (r *forumRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.ForumPost, error) {
	var post models.ForumPost

	if currentUserID == 0 {
		err := cache.Aside(ctx, cache.ForumKey(id), &post, cache.ForumTTL, func() error {
			return r.fetchByID(ctx, &post, id, 0)
		})
		if err != nil {
			return nil, err
		}
	} else if err := r.fetchByID(ctx, &post, id, currentUserID); err != nil {
		return nil, err
	}

	post.UserVote = models.ValueDirection(post.UserVoteValue)
	return &post, nil
}

func (r *forumRepository) fetchByID(ctx context.Context, dest *models.ForumPost, id, currentUserID uint) error {
	err := applyVoteDetails(r.db.WithContext(ctx), "forum_posts", models.SubjectForumPost, currentUserID).
		Preload("User").
		First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Forum post", id)
	}
	return err
}

func (r *forumRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.ForumPost, error) {
	var posts []*models.ForumPost
	err := applyVoteDetails(r.db.WithContext(ctx), "forum_posts", models.SubjectForumPost, currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	resolveForumVotes(posts)
	return posts, nil
}

func (r *forumRepository) List(ctx context.Context, limit, offset int, currentUserID uint, filter ForumListFilter) ([]*models.ForumPost, error) {
	var posts []*models.ForumPost
	q := applyVoteDetails(r.db.WithContext(ctx), "forum_posts", models.SubjectForumPost, currentUserID).
		Preload("User")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	resolveForumVotes(posts)
	return posts, nil
}

func (r *forumRepository) Update(ctx context.Context, post *models.ForumPost) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidateForumPost(ctx, post.ID)
	return nil
}

func (r *forumRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ForumPost{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateForumPost(ctx, id)
	return nil
}

func (r *forumRepository) OwnerID(ctx context.Context, id uint) (uint, error) {
	var post models.ForumPost
	if err := r.db.WithContext(ctx).Select("id", "user_id").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Forum post", id)
		}
		return 0, err
	}
	return post.UserID, nil
}

func resolveForumVotes(posts []*models.ForumPost) {
	for _, p := range posts {
		p.UserVote = models.ValueDirection(p.UserVoteValue)
	}
}
