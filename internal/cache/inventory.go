package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%d"
	TradeKeyPrefix = "trade:%d"
	EventKeyPrefix = "event:%d"
	ForumKeyPrefix = "forum:%d"
)

const (
	UserTTL  = 5 * time.Minute
	TradeTTL = 10 * time.Minute
	EventTTL = 2 * time.Minute
	ForumTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TradeKey(tradeID uint) string {
	return fmt.Sprintf(TradeKeyPrefix, tradeID)
}

func EventKey(eventID uint) string {
	return fmt.Sprintf(EventKeyPrefix, eventID)
}

func ForumKey(postID uint) string {
	return fmt.Sprintf(ForumKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateTrade(ctx context.Context, tradeID uint) {
	Invalidate(ctx, TradeKey(tradeID))
}

func InvalidateEvent(ctx context.Context, eventID uint) {
	Invalidate(ctx, EventKey(eventID))
}

func InvalidateForumPost(ctx context.Context, postID uint) {
	Invalidate(ctx, ForumKey(postID))
}

// InvalidateSubject drops the cached detail entry for a votable subject.
func InvalidateSubject(ctx context.Context, subjectType string, subjectID uint) {
	switch subjectType {
	case "trade":
		InvalidateTrade(ctx, subjectID)
	case "forum_post":
		InvalidateForumPost(ctx, subjectID)
	case "event":
		InvalidateEvent(ctx, subjectID)
	}
}
