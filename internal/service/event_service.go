package service

import (
	"context"
	"time"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
)

type EventService struct {
	eventRepo repository.EventRepository
	roleOf    func(ctx context.Context, userID uint) (models.Role, error)
	now       func() time.Time
}

type CreateEventInput struct {
	UserID      uint
	Title       string
	Description string
	Prize       string
	StartsAt    time.Time
	EndsAt      time.Time
}

type ListEventsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Status        models.EventStatus
}

type UpdateEventInput struct {
	UserID      uint
	EventID     uint
	Title       string
	Description string
	Prize       string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

func NewEventService(
	eventRepo repository.EventRepository,
	roleOf func(ctx context.Context, userID uint) (models.Role, error),
) *EventService {
	return &EventService{eventRepo: eventRepo, roleOf: roleOf, now: time.Now}
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	const maxTitleLen = 300

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return nil, models.NewValidationError("starts_at and ends_at are required")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, models.NewValidationError("ends_at must be after starts_at")
	}
	if in.EndsAt.Before(s.now()) {
		return nil, models.NewValidationError("ends_at must be in the future")
	}

	event := &models.Event{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Prize:       in.Prize,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, event.ID, in.UserID)
}

func (s *EventService) GetEvent(ctx context.Context, id uint, currentUserID uint) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id, currentUserID)
}

func (s *EventService) ListEvents(ctx context.Context, in ListEventsInput) ([]*models.Event, error) {
	if in.Status != "" && !models.ValidEventStatus(in.Status) {
		return nil, models.NewValidationError("Invalid status filter")
	}
	return s.eventRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID, in.Status)
}

func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, in.EventID, in.UserID)
	if err != nil {
		return nil, err
	}
	if event.UserID != in.UserID {
		role, err := s.roleOf(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !role.CanModerate() {
			return nil, models.NewUnauthorizedError("You can only update your own events")
		}
	}

	if in.Title != "" {
		event.Title = in.Title
	}
	if in.Description != "" {
		event.Description = in.Description
	}
	if in.Prize != "" {
		event.Prize = in.Prize
	}
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		event.EndsAt = *in.EndsAt
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, models.NewValidationError("ends_at must be after starts_at")
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	event.Status = event.ComputeStatus(s.now())
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID uint) error {
	ownerID, err := s.eventRepo.OwnerID(ctx, eventID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		role, err := s.roleOf(ctx, userID)
		if err != nil {
			return err
		}
		if !role.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own events")
		}
	}
	return s.eventRepo.Delete(ctx, eventID)
}
