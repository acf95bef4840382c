package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
)

type ForumService struct {
	forumRepo repository.ForumRepository
	roleOf    func(ctx context.Context, userID uint) (models.Role, error)
}

type CreateForumPostInput struct {
	UserID   uint
	Title    string
	Content  string
	Category string
}

type ListForumPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Category      string
	Search        string
}

type UpdateForumPostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	Category string
}

func NewForumService(
	forumRepo repository.ForumRepository,
	roleOf func(ctx context.Context, userID uint) (models.Role, error),
) *ForumService {
	return &ForumService{forumRepo: forumRepo, roleOf: roleOf}
}

func (s *ForumService) CreatePost(ctx context.Context, in CreateForumPostInput) (*models.ForumPost, error) {
	const maxTitleLen = 300
	const maxContentLen = 50000

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post := &models.ForumPost{
		UserID:   in.UserID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}
	if err := s.forumRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.forumRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *ForumService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.ForumPost, error) {
	return s.forumRepo.GetByID(ctx, id, currentUserID)
}

func (s *ForumService) ListPosts(ctx context.Context, in ListForumPostsInput) ([]*models.ForumPost, error) {
	return s.forumRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID, repository.ForumListFilter{
		Category: in.Category,
		Search:   in.Search,
	})
}

func (s *ForumService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.ForumPost, error) {
	return s.forumRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

func (s *ForumService) UpdatePost(ctx context.Context, in UpdateForumPostInput) (*models.ForumPost, error) {
	post, err := s.forumRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Category != "" {
		post.Category = in.Category
	}

	if err := s.forumRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ForumService) DeletePost(ctx context.Context, userID, postID uint) error {
	ownerID, err := s.forumRepo.OwnerID(ctx, postID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		role, err := s.roleOf(ctx, userID)
		if err != nil {
			return err
		}
		if !role.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}
	return s.forumRepo.Delete(ctx, postID)
}
