package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	ownerOf     SubjectOwnerFunc
	roleOf      func(ctx context.Context, userID uint) (models.Role, error)
}

type CreateCommentInput struct {
	UserID    uint
	Subject   models.VoteSubject
	SubjectID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	ownerOf SubjectOwnerFunc,
	roleOf func(ctx context.Context, userID uint) (models.Role, error),
) *CommentService {
	return &CommentService{commentRepo: commentRepo, ownerOf: ownerOf, roleOf: roleOf}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxCommentLen = 5000

	if !models.ValidSubject(in.Subject) {
		return nil, models.NewValidationError("Invalid subject type")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	// Subject must exist before accepting the comment.
	if _, err := s.ownerOf(ctx, in.Subject, in.SubjectID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		SubjectType: in.Subject,
		SubjectID:   in.SubjectID,
		UserID:      in.UserID,
		Content:     in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, subject models.VoteSubject, subjectID uint) ([]*models.Comment, error) {
	if !models.ValidSubject(subject) {
		return nil, models.NewValidationError("Invalid subject type")
	}
	if _, err := s.ownerOf(ctx, subject, subjectID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListBySubject(ctx, subject, subjectID)
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		role, err := s.roleOf(ctx, userID)
		if err != nil {
			return err
		}
		if !role.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}
