package repository

import (
	"context"
	"errors"
	"time"

	"bloxmarket/internal/cache"
	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Event, error)
	List(ctx context.Context, limit, offset int, currentUserID uint, status models.EventStatus) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
	OwnerID(ctx context.Context, id uint) (uint, error)
}

type eventRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db, now: time.Now}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return err
	}
	event.Status = event.ComputeStatus(r.now())
	return nil
}

// GetByID loads the event with its computed vote/comment details. Anonymous
// reads go through the cache; Status is recomputed from the clock on every
// read so a cached entry never carries a stale lifecycle state.
func (r *eventRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Event, error) {
	var event models.Event

	if currentUserID == 0 {
		err := cache.Aside(ctx, cache.EventKey(id), &event, cache.EventTTL, func() error {
			return r.fetchByID(ctx, &event, id, 0)
		})
		if err != nil {
			return nil, err
		}
	} else if err := r.fetchByID(ctx, &event, id, currentUserID); err != nil {
		return nil, err
	}

	event.UserVote = models.ValueDirection(event.UserVoteValue)
	event.Status = event.ComputeStatus(r.now())
	return &event, nil
}

func (r *eventRepository) fetchByID(ctx context.Context, dest *models.Event, id, currentUserID uint) error {
	err := applyVoteDetails(r.db.WithContext(ctx), "events", models.SubjectEvent, currentUserID).
		Preload("User").
		First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Event", id)
	}
	return err
}

// List filters on the computed lifecycle by translating the requested status
// into timestamp comparisons; the status itself is never stored.
func (r *eventRepository) List(ctx context.Context, limit, offset int, currentUserID uint, status models.EventStatus) ([]*models.Event, error) {
	var events []*models.Event
	q := applyVoteDetails(r.db.WithContext(ctx), "events", models.SubjectEvent, currentUserID).
		Preload("User")

	now := r.now()
	switch status {
	case models.EventStatusUpcoming:
		q = q.Where("starts_at > ?", now)
	case models.EventStatusActive:
		q = q.Where("starts_at <= ? AND ends_at > ?", now, now.Add(models.EndingSoonWindow))
	case models.EventStatusEndingSoon:
		q = q.Where("starts_at <= ? AND ends_at > ? AND ends_at <= ?", now, now, now.Add(models.EndingSoonWindow))
	case models.EventStatusEnded:
		q = q.Where("ends_at <= ?", now)
	}

	err := q.Order("starts_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for _, e := range events {
		e.UserVote = models.ValueDirection(e.UserVoteValue)
		e.Status = e.ComputeStatus(now)
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return err
	}
	event.Status = event.ComputeStatus(r.now())
	cache.InvalidateEvent(ctx, event.ID)
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Event{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateEvent(ctx, id)
	return nil
}

func (r *eventRepository) OwnerID(ctx context.Context, id uint) (uint, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Select("id", "user_id").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Event", id)
		}
		return 0, err
	}
	return event.UserID, nil
}
