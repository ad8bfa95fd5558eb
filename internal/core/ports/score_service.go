package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// AwardResult reports the outcome of a point award.
type AwardResult struct {
	NewScore int64
	Badges   []string
	// Unlocked lists badges newly earned by this award.
	Unlocked []string
}

// ScoreService accumulates points from the fixed event catalog and derives
// badge unlocks.
type ScoreService interface {
	Award(ctx context.Context, userID string, event domain.ScoreEvent) (*AwardResult, error)
	Leaderboard(ctx context.Context, limit int64) ([]*domain.User, error)
}
