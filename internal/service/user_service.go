package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
	"bloxmarket/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
	Avatar   string
}

type ChangeRoleInput struct {
	ActorID  uint
	TargetID uint
	NewRole  models.Role
	Reason   string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangeRole updates a user's role with an audit trail entry. The actor must
// be an admin; admins cannot demote themselves, which keeps at least one
// admin account reachable.
func (s *UserService) ChangeRole(ctx context.Context, in ChangeRoleInput) (*models.User, error) {
	if !models.ValidRole(in.NewRole) {
		return nil, models.NewValidationError("Invalid role")
	}

	actor, err := s.userRepo.GetByID(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanAdmin() {
		return nil, models.NewUnauthorizedError("Only admins can change roles")
	}
	if in.ActorID == in.TargetID {
		return nil, models.NewValidationError("You cannot change your own role")
	}

	if err := s.userRepo.ChangeRole(ctx, in.TargetID, in.ActorID, in.NewRole, in.Reason); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, in.TargetID)
}

func (s *UserService) RoleHistory(ctx context.Context, userID uint) ([]models.RoleHistory, error) {
	return s.userRepo.RoleHistory(ctx, userID)
}

// RoleOf looks up a user's current role. Handed to other services so they can
// answer ownership-or-moderator questions without importing the user repo.
func (s *UserService) RoleOf(ctx context.Context, userID uint) (models.Role, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
