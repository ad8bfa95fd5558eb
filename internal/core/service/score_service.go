package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/api/metrics"
	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const maxLeaderboardSize = 100

// ScoreService accumulates points per user and derives badge unlocks.
// Increments are atomic at the storage layer, so concurrent events for the
// same user commute and never lose updates.
type ScoreService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewScoreService(users ports.UserRepository, log zerolog.Logger) *ScoreService {
	return &ScoreService{users: users, log: log}
}

// Award credits the points for a catalog event, then recomputes badges
// from the new score. Stored badges are union-merged with the derived set
// so a badge, once earned, is never revoked.
func (s *ScoreService) Award(ctx context.Context, userID string, event domain.ScoreEvent) (*ports.AwardResult, error) {
	points, err := domain.PointsFor(event)
	if err != nil {
		return nil, err
	}

	if event == domain.EventGamePlayed || event == domain.EventGameWon {
		if err := s.users.IncrementGamesPlayed(ctx, userID); err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("games counter increment failed")
		}
	}

	newScore, err := s.users.IncrementScore(ctx, userID, points)
	if err != nil {
		return nil, err
	}
	metrics.PointsAwardedTotal.WithLabelValues(string(event)).Add(float64(points))

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	derived := domain.BadgesFor(newScore, domain.BadgeStats{
		GamesPlayed: user.GamesPlayed,
		Mentees:     user.Mentees,
	})
	merged := domain.MergeBadges(user.Badges, derived)
	unlocked := newlyUnlocked(user.Badges, merged)

	if len(unlocked) > 0 {
		// Only the new unlocks are persisted, via a set-union write, so
		// concurrent awards cannot overwrite each other's badges.
		if err := s.users.AddBadges(ctx, userID, unlocked); err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("badge persist failed")
		}
		for _, badge := range unlocked {
			metrics.BadgesUnlockedTotal.WithLabelValues(badge).Inc()
		}
	}

	return &ports.AwardResult{NewScore: newScore, Badges: merged, Unlocked: unlocked}, nil
}

// Leaderboard returns users ordered by score descending.
func (s *ScoreService) Leaderboard(ctx context.Context, limit int64) ([]*domain.User, error) {
	if limit <= 0 || limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}
	return s.users.ListByScore(ctx, limit)
}

func newlyUnlocked(before, after []string) []string {
	had := make(map[string]struct{}, len(before))
	for _, b := range before {
		had[b] = struct{}{}
	}
	var unlocked []string
	for _, b := range after {
		if _, ok := had[b]; !ok {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}
