package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/observability"
	"bloxmarket/internal/repository"
)

// SubjectOwnerFunc resolves the owning user of a votable resource, returning
// a not-found error when the resource does not exist.
type SubjectOwnerFunc func(ctx context.Context, subject models.VoteSubject, subjectID uint) (uint, error)

type VoteService struct {
	voteRepo repository.VoteRepository
	ownerOf  SubjectOwnerFunc
}

type VoteInput struct {
	UserID    uint
	Subject   models.VoteSubject
	SubjectID uint
	Direction string
}

func NewVoteService(voteRepo repository.VoteRepository, ownerOf SubjectOwnerFunc) *VoteService {
	return &VoteService{voteRepo: voteRepo, ownerOf: ownerOf}
}

// Vote toggles the caller's vote on a resource. Voting the same direction
// twice retracts the vote, voting the other direction flips it. Users cannot
// vote on their own resources.
func (s *VoteService) Vote(ctx context.Context, in VoteInput) (*models.VoteState, error) {
	if !models.ValidSubject(in.Subject) {
		return nil, models.NewValidationError("Invalid subject type")
	}
	value, ok := models.DirectionValue(in.Direction)
	if !ok {
		return nil, models.NewValidationError("Direction must be \"up\" or \"down\"")
	}

	ownerID, err := s.ownerOf(ctx, in.Subject, in.SubjectID)
	if err != nil {
		return nil, err
	}
	if ownerID == in.UserID {
		return nil, models.NewValidationError("You cannot vote on your own content")
	}

	existing, err := s.voteRepo.Get(ctx, in.UserID, in.Subject, in.SubjectID)
	if err != nil {
		return nil, err
	}

	var result string
	switch {
	case existing == nil:
		err = s.voteRepo.Set(ctx, &models.Vote{
			UserID:      in.UserID,
			SubjectType: in.Subject,
			SubjectID:   in.SubjectID,
			Value:       value,
		})
		result = "set"
	case existing.Value == value:
		err = s.voteRepo.Delete(ctx, in.UserID, in.Subject, in.SubjectID)
		result = "retracted"
	default:
		err = s.voteRepo.Set(ctx, &models.Vote{
			UserID:      in.UserID,
			SubjectType: in.Subject,
			SubjectID:   in.SubjectID,
			Value:       value,
		})
		result = "flipped"
	}
	if err != nil {
		return nil, err
	}
	observability.VotesCast.WithLabelValues(string(in.Subject), result).Inc()

	return s.State(ctx, in.UserID, in.Subject, in.SubjectID)
}

// State reads the current vote tallies and the caller's own vote.
func (s *VoteService) State(ctx context.Context, userID uint, subject models.VoteSubject, subjectID uint) (*models.VoteState, error) {
	up, down, err := s.voteRepo.Counts(ctx, subject, subjectID)
	if err != nil {
		return nil, err
	}

	state := &models.VoteState{Upvotes: up, Downvotes: down}
	if userID != 0 {
		vote, err := s.voteRepo.Get(ctx, userID, subject, subjectID)
		if err != nil {
			return nil, err
		}
		if vote != nil {
			state.UserVote = models.ValueDirection(vote.Value)
		}
	}
	return state, nil
}
